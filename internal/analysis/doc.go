// Package analysis characterizes recorded cloth motion.
//
//   - [PowerSpectrum]: magnitude spectrum of a frame series
//   - [DominantFrequency]: strongest sway frequency of a series
//   - [Divergence]: growth rate of a small displacement between two clothes
//   - [SettleTime]: time until a series stays inside a tolerance band
//
// A positive divergence means nearby cloth states separate over time. A
// damped cloth normally reports a negative rate:
//
//	rate, err := analysis.Divergence(layout, cloth.Silk{}, dt, 600, 1e-3)
package analysis
