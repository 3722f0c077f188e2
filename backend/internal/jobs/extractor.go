package jobs

import (
	"regexp"
	"sort"
	"strings"
)

var programmingLanguages = []string{
	"python", "java", "javascript", "typescript", "c++", "c#", "c", "go", "rust",
	"ruby", "php", "swift", "kotlin", "scala", "r", "matlab", "sql", "html", "css",
	"react", "angular", "vue", "node.js", "django", "flask", "spring", "express",
}

var technicalSkills = []string{
	"machine learning", "deep learning", "ai", "artificial intelligence",
	"data science", "data analysis", "big data", "cloud computing", "aws", "azure", "gcp",
	"docker", "kubernetes", "devops", "ci/cd", "agile", "scrum", "git", "linux",
	"database", "nosql", "mongodb", "postgresql", "mysql", "redis",
}

type term struct {
	name    string
	pattern *regexp.Regexp
}

var (
	languageTerms  = compileTerms(programmingLanguages)
	technicalTerms = compileTerms(technicalSkills)

	phrasePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:experience|knowledge|familiarity|proficiency|expertise)\s+(?:with|in|of)\s+(\w+(?:\s+\w+)?)`),
		regexp.MustCompile(`(?i)(\w+(?:\s+\w+)?)\s+(?:experience|knowledge|skills)`),
	}

	sentenceSplit = regexp.MustCompile(`[.;!?\n]+`)

	requiredWords  = []string{"required", "must", "need", "essential"}
	preferredWords = []string{"preferred", "nice", "bonus", "plus"}

	// Words that carry no skill meaning at the edges of a captured phrase
	fillerWords = map[string]bool{
		"a": true, "an": true, "the": true, "and": true, "or": true, "of": true,
		"in": true, "with": true, "to": true, "is": true, "are": true, "have": true,
		"has": true, "strong": true, "good": true, "solid": true, "some": true,
		"any": true, "prior": true, "relevant": true, "professional": true,
		"years": true, "year": true, "hands": true, "on": true, "required": true,
		"preferred": true, "plus": true, "nice": true, "bonus": true, "must": true,
		"excellent": true, "proven": true, "previous": true, "your": true, "our": true,
		"technical": true, "working": true, "deep": true, "practical": true,
	}
)

// compileTerms builds a matcher per vocabulary entry. Boundaries are explicit
// character classes because \b does not work around symbols like c++ and c#.
func compileTerms(names []string) []term {
	terms := make([]term, 0, len(names))
	for _, name := range names {
		terms = append(terms, term{
			name:    name,
			pattern: regexp.MustCompile(`(?:^|[^a-z0-9+#.])` + regexp.QuoteMeta(name) + `(?:$|[^a-z0-9+#])`),
		})
	}
	return terms
}

// ExtractSkills pulls programming languages, technical skills and
// requirement phrases out of a job description
func ExtractSkills(description string) ExtractedSkills {
	description = strings.TrimSpace(description)
	if description == "" {
		return emptySkills()
	}
	lower := strings.ToLower(description)

	languages := matchTerms(languageTerms, lower)
	technical := matchTerms(technicalTerms, lower)

	known := make(map[string]bool, len(languages)+len(technical))
	for _, s := range languages {
		known[s] = true
	}
	for _, s := range technical {
		known[s] = true
	}

	required := make(map[string]bool)
	preferred := make(map[string]bool)

	for _, sentence := range sentenceSplit.Split(description, -1) {
		context := strings.ToLower(sentence)
		for _, re := range phrasePatterns {
			for _, m := range re.FindAllStringSubmatch(sentence, -1) {
				skill := trimFillers(strings.ToLower(m[1]))
				if len(skill) <= 2 || known[skill] {
					continue
				}
				switch {
				case containsAny(context, requiredWords):
					required[skill] = true
				case containsAny(context, preferredWords):
					preferred[skill] = true
				default:
					required[skill] = true
				}
			}
		}
	}

	all := make(map[string]bool)
	for s := range known {
		all[s] = true
	}
	for s := range required {
		all[s] = true
	}
	for s := range preferred {
		all[s] = true
	}

	return ExtractedSkills{
		RequiredSkills:       sortedSet(required),
		PreferredSkills:      sortedSet(preferred),
		ProgrammingLanguages: languages,
		TechnicalSkills:      technical,
		AllSkills:            sortedSet(all),
	}
}

func emptySkills() ExtractedSkills {
	return ExtractedSkills{
		RequiredSkills:       []string{},
		PreferredSkills:      []string{},
		ProgrammingLanguages: []string{},
		TechnicalSkills:      []string{},
		AllSkills:            []string{},
	}
}

func matchTerms(terms []term, text string) []string {
	found := []string{}
	for _, t := range terms {
		if t.pattern.MatchString(text) {
			found = append(found, t.name)
		}
	}
	sort.Strings(found)
	return found
}

func trimFillers(phrase string) string {
	words := strings.Fields(phrase)
	for len(words) > 0 && (fillerWords[words[0]] || isNumber(words[0])) {
		words = words[1:]
	}
	for len(words) > 0 && (fillerWords[words[len(words)-1]] || isNumber(words[len(words)-1])) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func sortedSet(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
