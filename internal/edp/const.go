package edp

// Defaults and output file names.
const (
	PlaneScale       = 20.0 // pixels per angstrom
	PlaneInterval    = 20.0 // half-width of the cutting window in angstrom
	LogMin           = -3   // lower log10 bound of the color scale
	LogMax           = 2    // upper log10 bound of the color scale
	IsolineBins      = 6
	SphereStep       = 0.01 // radial increment of the spherical average in angstrom
	LebedevPoints    = 50
	RayWidth         = 512
	RayHeight        = 512
	RaySamples       = 16
	DensityScaling   = 0.5
	RayAxis          = 1 // march along the b lattice vector
	NonPositiveLog   = -12.0
	PlaneDataReal    = "planedata-real.bin"
	PlaneDataBool    = "planedata-bool.bin"
	LineExtraction   = "line_extraction.txt"
	ZExtraction      = "z_extraction.txt"
	SphericalAverage = "spherical_average.txt"
)
