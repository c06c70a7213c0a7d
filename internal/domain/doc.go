// Package domain models air-quality sensor readings and the pollution index
// predicted from them.
//
// # Feature Schema
//
// The regression model consumes a positional vector of seven readings. The
// order is fixed and independent of how the fields arrive on the wire:
//
//	index  field    reading
//	0      co       CO(GT), carbon monoxide, mg/m^3      e.g. 2.6
//	1      benzene  C6H6(GT), benzene, ug/m^3            e.g. 11.88
//	2      nox      NOx(GT), nitrogen oxides, ppb        e.g. 166.0
//	3      no2      NO2(GT), nitrogen dioxide, ug/m^3    e.g. 113.0
//	4      temp     T, temperature, degrees Celsius      e.g. 13.6
//	5      rh       RH, relative humidity, percent       e.g. 48.87
//	6      ah       AH, absolute humidity                e.g. 0.75
//
// Values only need to parse as finite decimal numbers. No physical range is
// enforced: a negative concentration is passed to the model as-is.
//
// # Severity Classification
//
// The predicted index maps onto three bands through two fixed cutoffs:
//
//	value <= 1064.395            Low
//	1064.395 < value <= 1303.75  Medium
//	value > 1303.75              High
//
// Both cutoffs belong to the lower band. The cutoffs are not configurable.
//
// # Display Format
//
// A prediction renders as
//
//	Predicted value: 1200.00
//	Severity Level: Medium Severity
//
// with the value rounded to two decimal places.
package domain
