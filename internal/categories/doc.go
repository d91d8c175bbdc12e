// Package categories decodes the encoded category column into one column per
// category.
//
// An encoded category string is a list of name-value tokens, for example
// "related-1;request-0;offer-0". The category names are inferred once from the
// first row (InferSchema); every row is assumed to list the same categories in
// the same order, and rows are not checked against the inferred names.
//
// Decoded values are text. Numeric conversion is controlled by
// msgcat.CoercionMode: CoerceLast converts only the last category column,
// CoerceAll converts all of them.
package categories
