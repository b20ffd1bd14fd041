// Package markdown turns raw post sources into structured documents: it
// splits front matter from body, renders Markdown to HTML with goldmark,
// extracts table-of-contents headings, and substitutes the site base URL
// placeholder in body text.
package markdown
