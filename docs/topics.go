// Package docs embeds the built-in documentation pages shown by the
// 'topic' subcommand. Each .md file in this directory is one topic,
// named after the file; readme.md is the index page and is not listed
// as a topic itself.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

//go:embed *.md
var pages embed.FS

// GetTopic returns the markdown for a single topic. The wildcard "*"
// stands for every topic in order.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics("*")
	}
	content, err := pages.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics concatenates the requested topics into one document. A "*"
// in the list expands to all topics at that position.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		names := []string{topic}
		if topic == "*" {
			all, err := GetAllTopics()
			if err != nil {
				return "", err
			}
			names = all
		}
		for _, name := range names {
			content, err := GetTopic(name)
			if err != nil {
				return "", err
			}
			b.WriteString(content)
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// GetAllTopics lists every topic name, sorted.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(pages, "*.md")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, f := range files {
		name := strings.TrimSuffix(f, ".md")
		if name == "readme" {
			continue
		}
		topics = append(topics, name)
	}
	slices.Sort(topics)
	return topics, nil
}
