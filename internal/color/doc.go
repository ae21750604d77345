// Package color turns a spoken Spanish phrase into a #RRGGBB code.
//
// Matching runs over an ordered table of colour names. The first name found
// anywhere in the phrase, ignoring case, decides the result; if none is found
// a literal hex code in the phrase is used instead. Both the substring
// matching and the order-based precedence are intentional: "enamorado"
// resolves to morado and "anaranjado" resolves to naranja.
package color
