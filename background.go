package raychel

import "math"

// SkyBackground returns a BackgroundFunc that blends horizonColor into
// zenithColor by the ray direction's elevation, falling back to
// groundColor below the horizon — adapted from the reference
// implementation's GradientSkybox, now expressed as the closure type the
// shader's miss path expects instead of a Skybox interface value.
func SkyBackground(horizonColor, zenithColor, groundColor Color, intensity float64) BackgroundFunc {
	return func(data RenderData) Color {
		elevation := data.Direction.Dot(Vec3{Y: 1})
		if elevation < 0 {
			return groundColor
		}
		return horizonColor.Scale(1 - elevation).Add(zenithColor.Scale(elevation)).Scale(intensity)
	}
}

// SunSkyBackground layers a directional highlight on top of a gradient
// sky: every ray whose direction has a positive dot product with
// sunDirection adds sunColor scaled by sunIntensity times that dot
// product raised to sunSharpness, on top of the underlying sky gradient;
// there is no hard angular cutoff beyond the hemisphere facing the sun. Adapted from the reference implementation's
// Sun light, folded into the background function since SDF scenes shade
// indirect light by path-tracing rather than by explicit light sampling.
func SunSkyBackground(horizonColor, zenithColor, groundColor Color, skyIntensity float64, sunDirection Vec3, sunColor Color, sunIntensity, sunSharpness float64) BackgroundFunc {
	sky := SkyBackground(horizonColor, zenithColor, groundColor, skyIntensity)
	sun := sunDirection.Normalize()

	return func(data RenderData) Color {
		base := sky(data)

		alignment := data.Direction.Dot(sun)
		if alignment <= 0 {
			return base
		}

		highlight := math.Pow(alignment, sunSharpness)
		return base.Add(sunColor.Scale(highlight * sunIntensity))
	}
}
