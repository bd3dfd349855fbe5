/*
Package edm detects breakouts, shifts in the level of a series, using the
E-divisive with medians family of statistics.

Single breakouts are found either exactly, with running medians, or
approximately, with quantiles of pairwise distances kept in interval trees.
Multiple breakouts are found with a penalized dynamic program over
candidate split points. All detectors normalize their input into [0, 1]
first and treat empty, short and constant series as having no breakouts.
*/
package edm
