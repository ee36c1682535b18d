// Package catalog holds the immutable letter, word and phrase tables of the
// game content, plus the letter reference type used wherever a letter is
// seen in a specific presentation form.
//
// Letters are compared under one of three strictness levels. Plain equality
// of letters is identity only; form-aware comparisons go through SameLetter,
// Key and LetterSet.
package catalog
