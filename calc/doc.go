// Package calc evaluates integer arithmetic expressions. Input passes through
// three stages:
//   - a lexer that yields INT, + - * / ( ) and EOF tokens on demand,
//     skipping whitespace;
//   - a one-token-lookahead recursive-descent parser building a tree of
//     *NumberLiteral and *BinaryExpr nodes with the usual precedence and
//     left associativity;
//   - a post-order evaluator. Integer operators are overflow-checked and
//     division always produces a float.
//
// Division by zero is reported as a DivisionByZeroError. Every failure is an
// *Error whose kind can be matched with errors.Is against the Err* sentinels.
package calc
