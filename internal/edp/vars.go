package edp

var (
	Debug  = false // set to true for verbose debug output
	Charts = true  // set to false to skip PNG charts of 1D profiles
)
