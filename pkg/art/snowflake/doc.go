// Package snowflake grows ice crystals with the Gravner-Griffeath
// cellular automaton and traces the result into plottable paths.
//
// # Model
//
// The automaton runs on a hexagonal lattice stored as a square grid
// where each cell has six neighbors. Every cell tracks three kinds of
// water mass (diffusive vapor, quasi-liquid boundary mass, frozen
// crystal mass) and each step runs three phases: diffusion, then
// freezing/attachment/melting, then attachment commit plus vapor noise.
// Growth starts from a single seeded cell at the center and stops when
// the crystal reaches the configured margin of the canvas or the step
// limit runs out.
//
// The eight parameters (beta, theta, alpha, kappa, mu, upsilon, sigma,
// gamma) control the crystal's character; see [DefaultEnvironment] for
// the baseline values. In curve mode the parameters drift along smooth
// random curves as the crystal grows, which produces the more organic,
// fern-like flakes.
//
// # Output
//
// The attached cells are clustered by crystal mass into output layers,
// each layer's region is contour-traced, and the hexagonal grid is
// mapped onto screen coordinates with a 45 degree rotation and a
// 1/sqrt(3) horizontal squeeze.
package snowflake
