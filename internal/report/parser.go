package report

import (
	"regexp"
	"strings"
)

// Coordinates are kept as the strings found in the document.
type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Report struct {
	Coordinates Coordinates `json:"coordinates"`
	Description string      `json:"description"`
}

// Empty reports whether nothing at all was found.
func (r *Report) Empty() bool {
	return r.Coordinates.Latitude == "" && r.Coordinates.Longitude == "" && r.Description == ""
}

const minParagraphLen = 100

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	paragraphRe  = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)

	coordinatePatterns = []*regexp.Regexp{
		// Coordinates: (37.7809, -122.4041)
		regexp.MustCompile(`(?i)coordinates:?\s*\(?([\d.\-]+)[,\s]+([\d.\-]+)\)?`),
		// GPS: 37.7809, -122.4041
		regexp.MustCompile(`(?i)GPS:?\s*\(?([\d.\-]+)[,\s]+([\d.\-]+)\)?`),
		// latitude: 37.7809, longitude: -122.4041
		regexp.MustCompile(`(?i)lat(?:itude)?[,:]?\s*([\d.\-]+)[,\s]+long(?:itude)?[,:]?\s*([\d.\-]+)`),
		// location: lat 37.7809, long -122.4041
		regexp.MustCompile(`(?i)location:?\s*\(?lat(?:itude)?:?\s*([\d.\-]+)[,\s]+(?:long(?:itude)?:?)?\s*([\d.\-]+)\)?`),
	}

	detailLabelRe = regexp.MustCompile(`(?i)detail(?:ed)?\s+description[:.]?\s*`)

	fallbackLabels = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:detailed\s+description|description)[:.]?\s*`),
		regexp.MustCompile(`(?i)(?:incident|crime)\s+description[:.]?\s*`),
		regexp.MustCompile(`(?i)narrative[:.]?\s*`),
		regexp.MustCompile(`(?i)summary[:.]?\s*`),
	}

	// заголовки, на которых заканчивается поле описания
	sectionStopRe = regexp.MustCompile(`(?i)police district:|location:|coordinates:|date:|time:|incident type:|reporting officer:|case number:`)

	crimeKeywords = []string{
		"theft", "robbery", "burglary", "assault", "stolen", "suspect",
		"victim", "incident", "crime", "police", "evading", "officer",
	}

	trailingHeaders = []string{
		"police district", "location", "coordinates", "date", "time",
		"incident type", "reporting officer", "case number", "officer",
		"incident number", "status", "classification",
	}
	trailingHeaderRes = compileTrailingHeaders(trailingHeaders)

	endMarkers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\. police`),
		regexp.MustCompile(`(?i)\. location`),
		regexp.MustCompile(`(?i)\. date`),
		regexp.MustCompile(`(?i)\. time`),
		regexp.MustCompile(`(?i)\. reporting`),
	}
)

// compileTrailingHeaders matches from the start of the sentence that holds
// "<header>:" to the end of the text.
func compileTrailingHeaders(headers []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(headers))
	for _, h := range headers {
		res = append(res, regexp.MustCompile(`(?is)[^.]*?\b`+regexp.QuoteMeta(h)+`\b\s*:.*$`))
	}
	return res
}

// Parse extracts coordinates and a free-text description from the text of
// an incident report. Every step is best effort.
func Parse(text string) *Report {
	flat := collapseSpaces(text)
	r := &Report{}

	for _, re := range coordinatePatterns {
		if m := re.FindStringSubmatch(flat); m != nil {
			r.Coordinates = Coordinates{Latitude: m[1], Longitude: m[2]}
			break
		}
	}

	r.Description = findDescription(text, flat)
	if r.Description != "" {
		r.Description = trimTrailingSections(r.Description)
	}
	return r
}

func findDescription(raw, flat string) string {
	if desc := labelledField(detailLabelRe, raw); desc != "" {
		return collapseSpaces(desc)
	}
	// первая найденная метка выигрывает, даже если поле пустое
	for _, re := range fallbackLabels {
		if re.MatchString(flat) {
			if desc := labelledField(re, flat); desc != "" {
				return collapseSpaces(desc)
			}
			break
		}
	}
	return collapseSpaces(pickParagraph(raw))
}

// labelledField returns the text after the first label match up to the next section header.
func labelledField(label *regexp.Regexp, text string) string {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	if stop := sectionStopRe.FindStringIndex(rest); stop != nil {
		rest = rest[:stop[0]]
	}
	return strings.TrimSpace(rest)
}

// pickParagraph prefers the first long paragraph that mentions a crime
// keyword, otherwise the longest one.
func pickParagraph(raw string) string {
	var candidates []string
	for _, p := range paragraphRe.Split(raw, -1) {
		p = strings.TrimSpace(p)
		if len(p) > minParagraphLen {
			candidates = append(candidates, p)
		}
	}

	for _, p := range candidates {
		lower := strings.ToLower(p)
		for _, kw := range crimeKeywords {
			if strings.Contains(lower, kw) {
				return p
			}
		}
	}

	longest := ""
	for _, p := range candidates {
		if len(p) > len(longest) {
			longest = p
		}
	}
	return longest
}

func trimTrailingSections(desc string) string {
	for _, re := range trailingHeaderRes {
		if loc := re.FindStringIndex(desc); loc != nil {
			desc = strings.TrimSpace(desc[:loc[0]])
		}
	}

	for _, marker := range endMarkers {
		if loc := marker.FindStringIndex(desc); loc != nil {
			return strings.TrimSpace(desc[:loc[0]+1])
		}
	}
	return desc
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
