// Standard attribute keys for machine learning log records.
//
// Keys follow a hierarchical naming convention ("model.name",
// "data.samples") so that log pipelines can filter on them.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of machine learning model.
	// Examples: "LogisticRegression", "StandardScaler", "KMer"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is logging.
	// Examples: "linear_model", "model_selection", "cli"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of model lifecycle.
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// TrainSamplesKey and TestSamplesKey record the sizes of a split.
	TrainSamplesKey = "data.train_samples"
	TestSamplesKey  = "data.test_samples"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records model accuracy for evaluation operations.
	AccuracyKey = "metrics.accuracy"

	// LossKey records the cost value during training or evaluation.
	LossKey = "metrics.loss"

	// TrainScoreKey and TestScoreKey record per-fold scores.
	TrainScoreKey = "metrics.train_score"
	TestScoreKey  = "metrics.test_score"

	// IterationKey records the current iteration number during iterative processes.
	IterationKey = "training.iteration"

	// ConvergedKey records whether the stopping rule fired before max_iter.
	ConvergedKey = "training.converged"

	// FoldKey records the index of a cross-validation fold.
	FoldKey = "cv.fold"

	// FoldsKey records the total number of folds.
	FoldsKey = "cv.folds"

	// GridPointKey records the index of a grid search combination.
	GridPointKey = "grid.point"

	// GridSizeKey records the total number of grid search combinations.
	GridSizeKey = "grid.size"
)

// Error and Warning Context
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"

	// SuggestionKey provides helpful suggestions for resolving issues.
	SuggestionKey = "error.suggestion"
)

// Hyperparameters and Configuration
const (
	// HyperParamsKey contains model hyperparameters as a structured object.
	HyperParamsKey = "model.hyperparams"

	// LearningRateKey records the gradient descent step size (alpha).
	LearningRateKey = "hyperparams.learning_rate"

	// RegularizationKey records the L2 penalty strength.
	RegularizationKey = "hyperparams.regularization"

	// MaxIterKey records the iteration cap.
	MaxIterKey = "hyperparams.max_iter"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Standard attribute values.
const (
	OperationFit           = "fit"
	OperationPredict       = "predict"
	OperationTransform     = "transform"
	OperationScore         = "score"
	OperationSplit         = "train_test_split"
	OperationCrossValidate = "cross_validate"
	OperationGridSearch    = "grid_search"

	PhaseTraining      = "training"
	PhaseValidation    = "validation"
	PhaseInference     = "inference"
	PhasePreprocessing = "preprocessing"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInvalidInput      = "INVALID_INPUT"
	ErrorConvergence       = "CONVERGENCE_FAILURE"
)
