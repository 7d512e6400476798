// Package content turns raw CMS post bodies into renderable HTML.
//
// Bodies that already carry structural HTML are trusted and returned as-is.
// Anything else is read as a small line-oriented plain-text dialect: headings,
// images, standalone video URLs, flat lists and paragraphs. There is no nesting,
// no blockquotes and no tables in the dialect.
package content
