// Package textutil provides the text helpers used to turn workout names and
// breadcrumb directories into safe file paths.
//
// Slugify follows the usual web slug rules: lowercase, alphanumerics and
// underscores kept, whitespace and dash runs collapsed to a single hyphen.
// Directory segments are folded to ASCII while file names keep their Unicode
// letters.
package textutil
