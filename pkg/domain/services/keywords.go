package services

import "strings"

// ParseKeywords splits a comma-separated keyword string, dropping blank entries
func ParseKeywords(value string) []string {
	return CleanKeywords(strings.Split(value, ","))
}

// CleanKeywords trims surrounding whitespace and drops blank entries
func CleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword != "" {
			cleaned = append(cleaned, keyword)
		}
	}
	return cleaned
}

// ContainsAny reports whether value contains any keyword as a substring
func ContainsAny(value string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(value, keyword) {
			return true
		}
	}
	return false
}
