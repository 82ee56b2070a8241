// Package errors provides the classified error primitives used across sitedesc.
//
// Two kinds matter to callers of the resolvers:
//   - ParseError: a page front-matter block is malformed (CategoryParse)
//   - ConfigError: the site configuration is invalid (CategoryConfig)
//
// Both carry the dotted path of the offending field and, once the caller knows
// it, the source file. Neither is retried; a failure halts the command.
//
//	err := errors.ConfigError("link is not a valid path or URL").
//		WithField("nav[2].link").
//		WithDetail("value", raw).
//		Build()
package errors
