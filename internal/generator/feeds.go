package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/posts"
)

const maxFeedItems = 100

func feedItems(index *posts.Index) []*posts.Post {
	items := index.All()
	if len(items) > maxFeedItems {
		items = items[:maxFeedItems]
	}
	return items
}

func buildRSSFeed(site SiteMetadata, index *posts.Index, generatedAt time.Time) string {
	base := baseURLWithFallback(site.BaseURL)
	items := feedItems(index)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString("  <channel>\n")
	builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", xmlEscape(site.Title)))
	builder.WriteString(fmt.Sprintf("    <link>%s/</link>\n", base))
	builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", xmlEscape(site.Description)))
	builder.WriteString(fmt.Sprintf("    <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	builder.WriteString(fmt.Sprintf(`    <atom:link href="%s/feed.xml" rel="self" type="application/rss+xml"/>`+"\n", base))

	for _, post := range items {
		permalink := absoluteURL(site.BaseURL, postRoute(post.Slug))
		builder.WriteString("    <item>\n")
		builder.WriteString(fmt.Sprintf("      <title>%s</title>\n", xmlEscape(post.Title)))
		builder.WriteString(fmt.Sprintf("      <link>%s</link>\n", permalink))
		builder.WriteString(fmt.Sprintf(`      <guid isPermaLink="false">%s</guid>`+"\n", post.ID))
		builder.WriteString(fmt.Sprintf("      <pubDate>%s</pubDate>\n", post.PublishDate.UTC().Format(time.RFC1123Z)))
		if post.AuthorName != "" {
			builder.WriteString(fmt.Sprintf("      <dc:creator xmlns:dc=\"http://purl.org/dc/elements/1.1/\">%s</dc:creator>\n", xmlEscape(post.AuthorName)))
		}
		builder.WriteString(fmt.Sprintf("      <description><![CDATA[%s]]></description>\n", cdataEscape(post.RenderedBody)))
		builder.WriteString("    </item>\n")
	}

	builder.WriteString("  </channel>\n")
	builder.WriteString("</rss>\n")
	return builder.String()
}

func buildAtomFeed(site SiteMetadata, index *posts.Index, generatedAt time.Time) string {
	base := baseURLWithFallback(site.BaseURL)
	items := feedItems(index)

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", xmlEscape(site.Title)))
	builder.WriteString(fmt.Sprintf("  <subtitle>%s</subtitle>\n", xmlEscape(site.Description)))
	builder.WriteString(fmt.Sprintf("  <id>%s/</id>\n", base))
	builder.WriteString(fmt.Sprintf(`  <link href="%s/"/>`+"\n", base))
	builder.WriteString(fmt.Sprintf(`  <link href="%s/feed.atom.xml" rel="self"/>`+"\n", base))
	builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", generatedAt.UTC().Format(time.RFC3339)))

	for _, post := range items {
		permalink := absoluteURL(site.BaseURL, postRoute(post.Slug))
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", xmlEscape(post.Title)))
		builder.WriteString(fmt.Sprintf(`    <link href="%s"/>`+"\n", permalink))
		builder.WriteString(fmt.Sprintf("    <id>urn:uuid:%s</id>\n", post.ID))
		builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", post.PublishDate.UTC().Format(time.RFC3339)))
		if post.AuthorName != "" {
			builder.WriteString("    <author>\n")
			builder.WriteString(fmt.Sprintf("      <name>%s</name>\n", xmlEscape(post.AuthorName)))
			builder.WriteString("    </author>\n")
		}
		builder.WriteString("    <content type=\"html\"><![CDATA[" + cdataEscape(post.RenderedBody) + "]]></content>\n")
		builder.WriteString("  </entry>\n")
	}

	builder.WriteString("</feed>\n")
	return builder.String()
}

// cdataEscape makes a rendered body safe inside a CDATA section. An embedded
// "]]>" would terminate the section early, so the sequence is split across two
// adjacent CDATA sections.
func cdataEscape(body []byte) string {
	return strings.ReplaceAll(string(body), "]]>", "]]]]><![CDATA[>")
}

func xmlEscape(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return replacer.Replace(value)
}
