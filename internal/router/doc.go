// Package router implements the proxy rule engine: path
// normalization, rewrite compilation, rule matching, and first-match
// resolution over an ordered rule set.
//
// Two matching behaviors are intentional compatibility quirks rather
// than oversights, and existing configurations depend on them:
//
//   - Regex rule keys are matched with substring search, so an
//     anchored pattern like ^/users/(\d+) also matches
//     /users/123/profile.
//   - A single trailing slash is stripped from a regex key's source
//     before compiling, so patterns written with a trailing slash
//     still match paths without one.
package router
