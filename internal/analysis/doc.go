// Package analysis provides chaos and signal analysis for worlds.
//
// The package includes:
//
//   - [LyapunovExponent]: largest Lyapunov exponent of a pendulum chain via
//     twin-trajectory separation
//   - [LyapunovSpectrum]: one exponent per perturbed phase coordinate
//   - [Phase]: angle against angular velocity for one bob
//   - [Poincare]: stroboscopic section of a double pendulum
//   - [PowerSpectrum]: frequency content of a sampled metric series
//   - [DominantFrequency]: the strongest oscillation in a series
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda, err := analysis.LyapunovExponent(chain, ticks, 1e-8)
//	if lambda > 0 {
//	    // chain is chaotic
//	}
package analysis
