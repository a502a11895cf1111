// Package optimizer searches a fixed grid of arrival times for the cheapest
// berth arrival. Each candidate runs the full prediction engine; the grid is
// measured from the moment the search starts, not from a requested ETA.
package optimizer
