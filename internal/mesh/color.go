package mesh

// RGB is a linear color with components in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

func (c RGB) Scaled(s float64) RGB {
	return RGB{c.R * s, c.G * s, c.B * s}
}

// Role names the material slot a primitive is shaded with.
type Role string

const (
	RoleWall      Role = "wall"
	RoleFloor     Role = "floor"
	RoleSkirt     Role = "skirt"
	RoleTrim      Role = "trim"
	RoleRoof      Role = "roof"
	RolePatio     Role = "patio"
	RoleStair     Role = "stair"
	RoleCounter   Role = "counter"
	RoleAttendant Role = "attendant"
	RoleForge     Role = "forge"
	RoleAnvil     Role = "anvil"
)

// MaterialScheme is the caller-owned shading descriptor: a base hue per
// role plus the value-noise parameters that modulate it per vertex. The
// synthesizer never holds renderer-lifetime state of its own.
type MaterialScheme struct {
	Palette   map[Role]RGB
	Octaves   int
	Frequency float64
	MinShade  float64
}

// DefaultMaterials returns the stock palette.
func DefaultMaterials() *MaterialScheme {
	return &MaterialScheme{
		Palette: map[Role]RGB{
			RoleWall:      {0.85, 0.80, 0.70},
			RoleFloor:     {0.55, 0.42, 0.30},
			RoleSkirt:     {0.45, 0.42, 0.38},
			RoleTrim:      {0.60, 0.48, 0.35},
			RoleRoof:      {0.60, 0.28, 0.22},
			RolePatio:     {0.62, 0.58, 0.50},
			RoleStair:     {0.50, 0.38, 0.28},
			RoleCounter:   {0.48, 0.34, 0.22},
			RoleAttendant: {0.80, 0.65, 0.55},
			RoleForge:     {0.35, 0.33, 0.32},
			RoleAnvil:     {0.25, 0.25, 0.28},
		},
		Octaves:   3,
		Frequency: 0.35,
		MinShade:  0.72,
	}
}

// BaseColor returns the palette hue for a role, white if unlisted.
func (m *MaterialScheme) BaseColor(role Role) RGB {
	if c, ok := m.Palette[role]; ok {
		return c
	}
	return RGB{1, 1, 1}
}

// Shade samples fractal value noise at p and maps it into
// [MinShade, 1]; surfaces are never flat-shaded single colors.
func (m *MaterialScheme) Shade(p Vec3) float64 {
	n := fractalNoise(p.X*m.Frequency, p.Y*m.Frequency, p.Z*m.Frequency, m.Octaves)
	return m.MinShade + (1-m.MinShade)*n
}

// hashNoise is lattice value noise: a deterministic hash per integer
// lattice point, trilinearly interpolated.
func hashNoise(x, y, z float64) float64 {
	x0, y0, z0 := floorInt(x), floorInt(y), floorInt(z)
	fx, fy, fz := x-float64(x0), y-float64(y0), z-float64(z0)
	fx, fy, fz = smooth(fx), smooth(fy), smooth(fz)

	c000 := latticeHash(x0, y0, z0)
	c100 := latticeHash(x0+1, y0, z0)
	c010 := latticeHash(x0, y0+1, z0)
	c110 := latticeHash(x0+1, y0+1, z0)
	c001 := latticeHash(x0, y0, z0+1)
	c101 := latticeHash(x0+1, y0, z0+1)
	c011 := latticeHash(x0, y0+1, z0+1)
	c111 := latticeHash(x0+1, y0+1, z0+1)

	bottom := lerp(lerp(c000, c100, fx), lerp(c010, c110, fx), fy)
	top := lerp(lerp(c001, c101, fx), lerp(c011, c111, fx), fy)
	return lerp(bottom, top, fz)
}

func fractalNoise(x, y, z float64, octaves int) float64 {
	total, amp, freq, norm := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < octaves; i++ {
		total += hashNoise(x*freq, y*freq, z*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return total / norm
}

func latticeHash(x, y, z int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(z)*2147483647
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h) / 4294967296.0
}

func floorInt(v float64) int {
	i := int(v)
	if v < float64(i) {
		i--
	}
	return i
}

func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
