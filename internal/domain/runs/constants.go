package runs

// Run kinds
const (
	KindPi      = "pi"
	KindProcGen = "procgen"
	KindProgram = "program"
	KindStress  = "stress"
)

// Run statuses
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// MaxResultBytes caps the stored result text
const MaxResultBytes = 4096
