// Package baseline holds the reference profile of a single-threaded,
// uncontended annual EnergyPlus run. Every fabricated scenario derives
// its function timings from this table.
package baseline

type (
	// Class groups functions by how they respond to concurrency.
	Class string

	// ContentionParams describe how a function degrades when the host is
	// starved for memory and I/O bandwidth.
	ContentionParams struct {
		Factor      float64
		Variability float64
	}

	// ThreadingParams describe the speedup a function can extract from a
	// multithreaded run and how efficiently it scales.
	ThreadingParams struct {
		Improvement float64
		Efficiency  float64
	}

	// HybridParams describe the combined outcome when threading gains and
	// system-wide contention apply at the same time.
	HybridParams struct {
		Improvement float64
		Efficiency  float64
		Contention  float64
		NetEffect   string
	}

	// FunctionProfile is one row of the reference profile. MatrixCalls is
	// the fixed call count used by the concurrency matrix sweep, which was
	// measured on a separate reference run from CallCount.
	FunctionProfile struct {
		Name        string
		Class       Class
		TotalTime   float64
		StdDev      float64
		CallCount   uint64
		MatrixCalls uint64
		Contention  ContentionParams
		Threading   ThreadingParams
		Hybrid      HybridParams
	}
)

const (
	ClassIOIntensive     Class = "io_intensive"
	ClassCPUIntensive    Class = "cpu_intensive"
	ClassParallelizable  Class = "parallelizable"
	ClassMemoryIntensive Class = "memory_intensive"
	ClassMathFunction    Class = "math_function"
	ClassDefault         Class = "default"
)

// Net effect labels used in hybrid runs.
const (
	NetEffectGain       = "gain"
	NetEffectSlightGain = "slight_gain"
	NetEffectNeutral    = "neutral"
	NetEffectMixed      = "mixed"
	NetEffectSlightLoss = "slight_loss"
	NetEffectLoss       = "loss"
)

// TotalSimulationTime is the wall-clock seconds of the reference run.
const TotalSimulationTime = 388.23

// Functions is the reference profile, ordered by subsystem the way the
// EnergyPlus call tree reports them.
var Functions = []FunctionProfile{
	// HVAC simulation core
	{Name: "SimulateHVAC", Class: ClassCPUIntensive, TotalTime: 45.2, StdDev: 12.3, CallCount: 850, MatrixCalls: 842,
		Contention: ContentionParams{Factor: 2.8, Variability: 3.2},
		Threading:  ThreadingParams{Improvement: 1.8, Efficiency: 0.75},
		Hybrid:     HybridParams{Improvement: 1.8, Efficiency: 0.60, Contention: 2.1, NetEffect: NetEffectMixed}},
	{Name: "CalcAirLoopSplitter", TotalTime: 2.1, StdDev: 0.5, CallCount: 1200, MatrixCalls: 1147,
		Contention: ContentionParams{Factor: 2.1, Variability: 2.8},
		Threading:  ThreadingParams{Improvement: 2.2, Efficiency: 0.85},
		Hybrid:     HybridParams{Improvement: 2.2, Efficiency: 0.65, Contention: 1.8, NetEffect: NetEffectSlightGain}},
	{Name: "SimulateAirLoopComponents", Class: ClassParallelizable, TotalTime: 18.7, StdDev: 4.2, CallCount: 950, MatrixCalls: 952,
		Contention: ContentionParams{Factor: 2.6, Variability: 3.1},
		Threading:  ThreadingParams{Improvement: 2.4, Efficiency: 0.80},
		Hybrid:     HybridParams{Improvement: 2.4, Efficiency: 0.62, Contention: 2.0, NetEffect: NetEffectMixed}},
	{Name: "CalcFanSystemTemperatures", TotalTime: 3.4, StdDev: 0.8, CallCount: 1100, MatrixCalls: 1096,
		Contention: ContentionParams{Factor: 2.3, Variability: 2.9},
		Threading:  ThreadingParams{Improvement: 1.9, Efficiency: 0.70},
		Hybrid:     HybridParams{Improvement: 1.9, Efficiency: 0.58, Contention: 1.9, NetEffect: NetEffectNeutral}},
	{Name: "SimulateCoils", TotalTime: 8.9, StdDev: 2.1, CallCount: 1050, MatrixCalls: 992,
		Contention: ContentionParams{Factor: 2.4, Variability: 3.0},
		Threading:  ThreadingParams{Improvement: 2.1, Efficiency: 0.78},
		Hybrid:     HybridParams{Improvement: 2.1, Efficiency: 0.60, Contention: 1.9, NetEffect: NetEffectSlightGain}},
	{Name: "CalcCoolingCoil", TotalTime: 5.2, StdDev: 1.3, CallCount: 920, MatrixCalls: 876,
		Contention: ContentionParams{Factor: 2.2, Variability: 2.7},
		Threading:  ThreadingParams{Improvement: 2.0, Efficiency: 0.76},
		Hybrid:     HybridParams{Improvement: 2.0, Efficiency: 0.55, Contention: 1.8, NetEffect: NetEffectSlightGain}},
	{Name: "CalcHeatingCoil", TotalTime: 4.1, StdDev: 0.9, CallCount: 880, MatrixCalls: 836,
		Contention: ContentionParams{Factor: 2.1, Variability: 2.6},
		Threading:  ThreadingParams{Improvement: 1.8, Efficiency: 0.74},
		Hybrid:     HybridParams{Improvement: 1.8, Efficiency: 0.52, Contention: 1.7, NetEffect: NetEffectSlightGain}},
	{Name: "SimulateChillers", Class: ClassMemoryIntensive, TotalTime: 12.5, StdDev: 3.7, CallCount: 450, MatrixCalls: 426,
		Contention: ContentionParams{Factor: 3.2, Variability: 4.1},
		Threading:  ThreadingParams{Improvement: 1.6, Efficiency: 0.65},
		Hybrid:     HybridParams{Improvement: 1.6, Efficiency: 0.45, Contention: 2.4, NetEffect: NetEffectLoss}},
	{Name: "CalcBoilerModel", Class: ClassMemoryIntensive, TotalTime: 6.8, StdDev: 1.8, CallCount: 380, MatrixCalls: 364,
		Contention: ContentionParams{Factor: 2.9, Variability: 3.4},
		Threading:  ThreadingParams{Improvement: 1.5, Efficiency: 0.60},
		Hybrid:     HybridParams{Improvement: 1.5, Efficiency: 0.40, Contention: 2.2, NetEffect: NetEffectLoss}},
	{Name: "SimulatePumps", TotalTime: 2.9, StdDev: 0.7, CallCount: 760, MatrixCalls: 750,
		Contention: ContentionParams{Factor: 2.0, Variability: 2.5},
		Threading:  ThreadingParams{Improvement: 1.4, Efficiency: 0.55},
		Hybrid:     HybridParams{Improvement: 1.4, Efficiency: 0.35, Contention: 1.8, NetEffect: NetEffectSlightLoss}},

	// Zone heat balance
	{Name: "ManageZoneEquipment", Class: ClassParallelizable, TotalTime: 15.6, StdDev: 4.5, CallCount: 1200, MatrixCalls: 1200,
		Contention: ContentionParams{Factor: 3.1, Variability: 3.8},
		Threading:  ThreadingParams{Improvement: 3.2, Efficiency: 0.90},
		Hybrid:     HybridParams{Improvement: 3.2, Efficiency: 0.68, Contention: 2.3, NetEffect: NetEffectGain}},
	{Name: "CalcZoneAirLoads", Class: ClassParallelizable, TotalTime: 22.1, StdDev: 6.2, CallCount: 1150, MatrixCalls: 1172,
		Contention: ContentionParams{Factor: 3.4, Variability: 4.2},
		Threading:  ThreadingParams{Improvement: 3.8, Efficiency: 0.92},
		Hybrid:     HybridParams{Improvement: 3.8, Efficiency: 0.70, Contention: 2.5, NetEffect: NetEffectGain}},
	{Name: "SimulateInternalHeatGains", TotalTime: 7.3, StdDev: 2.0, CallCount: 1100, MatrixCalls: 1088,
		Contention: ContentionParams{Factor: 2.7, Variability: 3.2},
		Threading:  ThreadingParams{Improvement: 2.9, Efficiency: 0.88},
		Hybrid:     HybridParams{Improvement: 2.9, Efficiency: 0.65, Contention: 2.1, NetEffect: NetEffectGain}},
	{Name: "CalcWindowHeatBalance", Class: ClassCPUIntensive, TotalTime: 19.8, StdDev: 5.4, CallCount: 980, MatrixCalls: 917,
		Contention: ContentionParams{Factor: 4.1, Variability: 5.2},
		Threading:  ThreadingParams{Improvement: 4.2, Efficiency: 0.95},
		Hybrid:     HybridParams{Improvement: 4.2, Efficiency: 0.72, Contention: 2.8, NetEffect: NetEffectGain}},
	{Name: "CalcExteriorSurfaceTemp", TotalTime: 8.7, StdDev: 2.3, CallCount: 1050, MatrixCalls: 1029,
		Contention: ContentionParams{Factor: 3.3, Variability: 4.0},
		Threading:  ThreadingParams{Improvement: 3.5, Efficiency: 0.91},
		Hybrid:     HybridParams{Improvement: 3.5, Efficiency: 0.68, Contention: 2.4, NetEffect: NetEffectGain}},
	{Name: "CalcInteriorSurfaceTemp", TotalTime: 11.2, StdDev: 3.1, CallCount: 1020, MatrixCalls: 1049,
		Contention: ContentionParams{Factor: 3.5, Variability: 4.3},
		Threading:  ThreadingParams{Improvement: 3.6, Efficiency: 0.92},
		Hybrid:     HybridParams{Improvement: 3.6, Efficiency: 0.70, Contention: 2.5, NetEffect: NetEffectGain}},
	{Name: "CalcHeatBalFiniteDiff", Class: ClassCPUIntensive, TotalTime: 31.4, StdDev: 9.8, CallCount: 720, MatrixCalls: 733,
		Contention: ContentionParams{Factor: 4.8, Variability: 6.1},
		Threading:  ThreadingParams{Improvement: 4.8, Efficiency: 0.96},
		Hybrid:     HybridParams{Improvement: 4.8, Efficiency: 0.65, Contention: 3.2, NetEffect: NetEffectMixed}},
	{Name: "CalcHeatBalConductionTransferFunction", Class: ClassCPUIntensive, TotalTime: 25.7, StdDev: 7.1, CallCount: 680, MatrixCalls: 678,
		Contention: ContentionParams{Factor: 4.5, Variability: 5.8},
		Threading:  ThreadingParams{Improvement: 4.5, Efficiency: 0.94},
		Hybrid:     HybridParams{Improvement: 4.5, Efficiency: 0.63, Contention: 3.0, NetEffect: NetEffectMixed}},

	// Weather and solar
	{Name: "ManageWeather", TotalTime: 1.8, StdDev: 0.4, CallCount: 8760, MatrixCalls: 8728,
		Contention: ContentionParams{Factor: 1.6, Variability: 2.1},
		Threading:  ThreadingParams{Improvement: 1.1, Efficiency: 0.30},
		Hybrid:     HybridParams{Improvement: 1.1, Efficiency: 0.20, Contention: 1.4, NetEffect: NetEffectLoss}},
	{Name: "CalcSolarRadiation", Class: ClassParallelizable, TotalTime: 13.5, StdDev: 3.8, CallCount: 1200, MatrixCalls: 1217,
		Contention: ContentionParams{Factor: 2.8, Variability: 3.4},
		Threading:  ThreadingParams{Improvement: 2.8, Efficiency: 0.85},
		Hybrid:     HybridParams{Improvement: 2.8, Efficiency: 0.62, Contention: 2.1, NetEffect: NetEffectGain}},
	{Name: "CalcDifferenceSolarRadiation", TotalTime: 4.2, StdDev: 1.1, CallCount: 1150, MatrixCalls: 1076,
		Contention: ContentionParams{Factor: 2.4, Variability: 2.9},
		Threading:  ThreadingParams{Improvement: 2.6, Efficiency: 0.83},
		Hybrid:     HybridParams{Improvement: 2.6, Efficiency: 0.60, Contention: 1.9, NetEffect: NetEffectGain}},
	{Name: "InterpolateBetweenTwoValues", TotalTime: 0.05, StdDev: 0.01, CallCount: 15600, MatrixCalls: 14799,
		Contention: ContentionParams{Factor: 1.8, Variability: 2.3},
		Threading:  ThreadingParams{Improvement: 1.2, Efficiency: 0.35},
		Hybrid:     HybridParams{Improvement: 1.2, Efficiency: 0.20, Contention: 1.6, NetEffect: NetEffectLoss}},
	{Name: "CalculateSunDirectionCosines", TotalTime: 0.8, StdDev: 0.2, CallCount: 8760, MatrixCalls: 8114,
		Contention: ContentionParams{Factor: 1.7, Variability: 2.2},
		Threading:  ThreadingParams{Improvement: 1.3, Efficiency: 0.40},
		Hybrid:     HybridParams{Improvement: 1.3, Efficiency: 0.25, Contention: 1.5, NetEffect: NetEffectLoss}},

	// Plant loops
	{Name: "ManagePlantLoops", Class: ClassMemoryIntensive, TotalTime: 28.9, StdDev: 8.2, CallCount: 650, MatrixCalls: 636,
		Contention: ContentionParams{Factor: 3.9, Variability: 4.8},
		Threading:  ThreadingParams{Improvement: 2.2, Efficiency: 0.75},
		Hybrid:     HybridParams{Improvement: 2.2, Efficiency: 0.50, Contention: 2.8, NetEffect: NetEffectLoss}},
	{Name: "SimulatePlantProfile", TotalTime: 3.7, StdDev: 1.0, CallCount: 750, MatrixCalls: 693,
		Contention: ContentionParams{Factor: 2.5, Variability: 3.1},
		Threading:  ThreadingParams{Improvement: 1.8, Efficiency: 0.68},
		Hybrid:     HybridParams{Improvement: 1.8, Efficiency: 0.45, Contention: 2.0, NetEffect: NetEffectSlightLoss}},
	{Name: "UpdatePlantLoopInterface", TotalTime: 2.1, StdDev: 0.6, CallCount: 890, MatrixCalls: 866,
		Contention: ContentionParams{Factor: 2.2, Variability: 2.8},
		Threading:  ThreadingParams{Improvement: 1.4, Efficiency: 0.52},
		Hybrid:     HybridParams{Improvement: 1.4, Efficiency: 0.35, Contention: 1.8, NetEffect: NetEffectLoss}},
	{Name: "CalcPlantValves", TotalTime: 1.9, StdDev: 0.5, CallCount: 420, MatrixCalls: 427,
		Contention: ContentionParams{Factor: 2.0, Variability: 2.5},
		Threading:  ThreadingParams{Improvement: 1.6, Efficiency: 0.58},
		Hybrid:     HybridParams{Improvement: 1.6, Efficiency: 0.38, Contention: 1.7, NetEffect: NetEffectSlightLoss}},

	// Economics
	{Name: "CalcTariffEvaluation", TotalTime: 5.1, StdDev: 1.4, CallCount: 120, MatrixCalls: 119,
		Contention: ContentionParams{Factor: 1.8, Variability: 2.2},
		Threading:  ThreadingParams{Improvement: 1.2, Efficiency: 0.38},
		Hybrid:     HybridParams{Improvement: 1.2, Efficiency: 0.25, Contention: 1.5, NetEffect: NetEffectLoss}},
	{Name: "UpdateUtilityBills", TotalTime: 2.3, StdDev: 0.6, CallCount: 140, MatrixCalls: 142,
		Contention: ContentionParams{Factor: 1.7, Variability: 2.1},
		Threading:  ThreadingParams{Improvement: 1.1, Efficiency: 0.32},
		Hybrid:     HybridParams{Improvement: 1.1, Efficiency: 0.20, Contention: 1.4, NetEffect: NetEffectLoss}},
	{Name: "EconomicTariffManager", TotalTime: 3.8, StdDev: 1.0, CallCount: 110, MatrixCalls: 104,
		Contention: ContentionParams{Factor: 1.9, Variability: 2.3},
		Threading:  ThreadingParams{Improvement: 1.1, Efficiency: 0.35},
		Hybrid:     HybridParams{Improvement: 1.1, Efficiency: 0.22, Contention: 1.6, NetEffect: NetEffectLoss}},

	// Reporting and output
	{Name: "UpdateDataandReport", Class: ClassIOIntensive, TotalTime: 12.4, StdDev: 3.5, CallCount: 200, MatrixCalls: 186,
		Contention: ContentionParams{Factor: 3.7, Variability: 4.5},
		Threading:  ThreadingParams{Improvement: 1.3, Efficiency: 0.45},
		Hybrid:     HybridParams{Improvement: 1.3, Efficiency: 0.30, Contention: 2.5, NetEffect: NetEffectLoss}},
	{Name: "WriteOutputToSQLite", Class: ClassIOIntensive, TotalTime: 8.7, StdDev: 2.2, CallCount: 180, MatrixCalls: 177,
		Contention: ContentionParams{Factor: 4.2, Variability: 5.1},
		Threading:  ThreadingParams{Improvement: 1.2, Efficiency: 0.40},
		Hybrid:     HybridParams{Improvement: 1.2, Efficiency: 0.25, Contention: 2.8, NetEffect: NetEffectLoss}},
	{Name: "ReportSurfaceHeatBalance", Class: ClassIOIntensive, TotalTime: 4.6, StdDev: 1.2, CallCount: 195, MatrixCalls: 179,
		Contention: ContentionParams{Factor: 3.1, Variability: 3.8},
		Threading:  ThreadingParams{Improvement: 1.4, Efficiency: 0.48},
		Hybrid:     HybridParams{Improvement: 1.4, Efficiency: 0.32, Contention: 2.2, NetEffect: NetEffectLoss}},
	{Name: "ReportAirHeatBalance", Class: ClassIOIntensive, TotalTime: 3.9, StdDev: 1.0, CallCount: 190, MatrixCalls: 178,
		Contention: ContentionParams{Factor: 2.9, Variability: 3.5},
		Threading:  ThreadingParams{Improvement: 1.3, Efficiency: 0.46},
		Hybrid:     HybridParams{Improvement: 1.3, Efficiency: 0.30, Contention: 2.0, NetEffect: NetEffectLoss}},
	{Name: "UpdateMeterReporting", TotalTime: 2.1, StdDev: 0.5, CallCount: 210, MatrixCalls: 208,
		Contention: ContentionParams{Factor: 2.6, Variability: 3.2},
		Threading:  ThreadingParams{Improvement: 1.2, Efficiency: 0.42},
		Hybrid:     HybridParams{Improvement: 1.2, Efficiency: 0.28, Contention: 1.8, NetEffect: NetEffectLoss}},

	// One-time setup
	{Name: "GetInput", Class: ClassIOIntensive, TotalTime: 15.7, StdDev: 0, CallCount: 1, MatrixCalls: 1,
		Contention: ContentionParams{Factor: 2.1, Variability: 1.0},
		Threading:  ThreadingParams{Improvement: 1.0, Efficiency: 0},
		Hybrid:     HybridParams{Improvement: 1.0, Efficiency: 0, Contention: 1.8, NetEffect: NetEffectLoss}},
	{Name: "InitializeSimulation", TotalTime: 8.3, StdDev: 0, CallCount: 1, MatrixCalls: 1,
		Contention: ContentionParams{Factor: 2.3, Variability: 1.0},
		Threading:  ThreadingParams{Improvement: 1.0, Efficiency: 0},
		Hybrid:     HybridParams{Improvement: 1.0, Efficiency: 0, Contention: 1.9, NetEffect: NetEffectLoss}},
	{Name: "SetupNodeVarsForReporting", TotalTime: 2.4, StdDev: 0, CallCount: 1, MatrixCalls: 1,
		Contention: ContentionParams{Factor: 1.8, Variability: 1.0},
		Threading:  ThreadingParams{Improvement: 1.0, Efficiency: 0},
		Hybrid:     HybridParams{Improvement: 1.0, Efficiency: 0, Contention: 1.5, NetEffect: NetEffectLoss}},
	{Name: "SetupOutputVariables", TotalTime: 3.1, StdDev: 0, CallCount: 1, MatrixCalls: 1,
		Contention: ContentionParams{Factor: 1.9, Variability: 1.0},
		Threading:  ThreadingParams{Improvement: 1.0, Efficiency: 0},
		Hybrid:     HybridParams{Improvement: 1.0, Efficiency: 0, Contention: 1.6, NetEffect: NetEffectLoss}},
	{Name: "ValidateInputData", TotalTime: 4.8, StdDev: 0, CallCount: 1, MatrixCalls: 1,
		Contention: ContentionParams{Factor: 2.0, Variability: 1.0},
		Threading:  ThreadingParams{Improvement: 1.0, Efficiency: 0},
		Hybrid:     HybridParams{Improvement: 1.0, Efficiency: 0, Contention: 1.7, NetEffect: NetEffectLoss}},

	// Psychrometrics and curve evaluation
	{Name: "PsyRhoAirFnPbTdbW", Class: ClassMathFunction, TotalTime: 0.02, StdDev: 0.005, CallCount: 45000, MatrixCalls: 44680,
		Contention: ContentionParams{Factor: 2.4, Variability: 3.8},
		Threading:  ThreadingParams{Improvement: 2.8, Efficiency: 0.85},
		Hybrid:     HybridParams{Improvement: 2.8, Efficiency: 0.55, Contention: 2.0, NetEffect: NetEffectSlightLoss}},
	{Name: "PsyHFnTdbW", Class: ClassMathFunction, TotalTime: 0.015, StdDev: 0.003, CallCount: 52000, MatrixCalls: 49010,
		Contention: ContentionParams{Factor: 2.3, Variability: 3.6},
		Threading:  ThreadingParams{Improvement: 2.9, Efficiency: 0.87},
		Hybrid:     HybridParams{Improvement: 2.9, Efficiency: 0.57, Contention: 1.9, NetEffect: NetEffectSlightLoss}},
	{Name: "PsyCpAirFnW", TotalTime: 0.012, StdDev: 0.002, CallCount: 38000, MatrixCalls: 37769,
		Contention: ContentionParams{Factor: 2.2, Variability: 3.4},
		Threading:  ThreadingParams{Improvement: 2.7, Efficiency: 0.84},
		Hybrid:     HybridParams{Improvement: 2.7, Efficiency: 0.52, Contention: 1.8, NetEffect: NetEffectSlightLoss}},
	{Name: "PsyTsatFnHPb", TotalTime: 0.018, StdDev: 0.004, CallCount: 28000, MatrixCalls: 26732,
		Contention: ContentionParams{Factor: 2.5, Variability: 3.9},
		Threading:  ThreadingParams{Improvement: 2.6, Efficiency: 0.82},
		Hybrid:     HybridParams{Improvement: 2.6, Efficiency: 0.50, Contention: 2.1, NetEffect: NetEffectSlightLoss}},
	{Name: "POLYF", Class: ClassMathFunction, TotalTime: 0.008, StdDev: 0.001, CallCount: 125000, MatrixCalls: 115479,
		Contention: ContentionParams{Factor: 3.1, Variability: 4.7},
		Threading:  ThreadingParams{Improvement: 3.2, Efficiency: 0.90},
		Hybrid:     HybridParams{Improvement: 3.2, Efficiency: 0.60, Contention: 2.3, NetEffect: NetEffectSlightLoss}},
	{Name: "CurveValue", Class: ClassMathFunction, TotalTime: 0.012, StdDev: 0.002, CallCount: 89000, MatrixCalls: 83630,
		Contention: ContentionParams{Factor: 2.9, Variability: 4.3},
		Threading:  ThreadingParams{Improvement: 3.0, Efficiency: 0.88},
		Hybrid:     HybridParams{Improvement: 3.0, Efficiency: 0.58, Contention: 2.2, NetEffect: NetEffectSlightLoss}},
	{Name: "TableLookup", Class: ClassMathFunction, TotalTime: 0.025, StdDev: 0.005, CallCount: 67000, MatrixCalls: 68817,
		Contention: ContentionParams{Factor: 3.4, Variability: 5.2},
		Threading:  ThreadingParams{Improvement: 2.4, Efficiency: 0.78},
		Hybrid:     HybridParams{Improvement: 2.4, Efficiency: 0.50, Contention: 2.5, NetEffect: NetEffectLoss}},
	{Name: "RegularQn", Class: ClassMathFunction, TotalTime: 0.035, StdDev: 0.008, CallCount: 34000, MatrixCalls: 34688,
		Contention: ContentionParams{Factor: 2.7, Variability: 3.9},
		Threading:  ThreadingParams{Improvement: 2.2, Efficiency: 0.75},
		Hybrid:     HybridParams{Improvement: 2.2, Efficiency: 0.48, Contention: 2.1, NetEffect: NetEffectSlightLoss}},
}
