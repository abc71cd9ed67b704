// Package prompt holds the instruction templates sent ahead of the documents.
package prompt

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects the instruction template.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeDetailed Mode = "detailed"
)

// ErrInvalidMode is returned for any mode other than basic or detailed.
var ErrInvalidMode = errors.New("invalid analysis mode")

// Modes lists the accepted modes in display order.
func Modes() []Mode {
	return []Mode{ModeBasic, ModeDetailed}
}

// ParseMode accepts a mode name in any letter case.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := templates[m]; !ok {
		return "", fmt.Errorf("%w %q: must be one of basic, detailed", ErrInvalidMode, s)
	}
	return m, nil
}

// Build prepends the template for mode to the document text.
func Build(mode Mode, documentText string) (string, error) {
	tmpl, ok := templates[mode]
	if !ok {
		return "", fmt.Errorf("%w %q: must be one of basic, detailed", ErrInvalidMode, mode)
	}
	return tmpl + "\n" + documentText, nil
}

var templates = map[Mode]string{
	ModeDetailed: detailedPrompt,
	ModeBasic:    basicPrompt,
}

const detailedPrompt = `Attached are the Resume, Cover Letter, and Job Description for which the candidate is applying for the job.

What I want from you is to analyze the Resume and Cover Letter and compare them to the Job Description.

1. **Brief Introduction**:
   - Introduce the job and the candidate (mention the name of the candidate from the Resume).

2. **Analysis Results**:
   - Compare the Resume to the Job Description:
     - Is the candidate a good fit or not?
     - What are the candidate's strong points for this job?
     - What are the candidate's weaknesses?
     - How can the candidate improve the Resume?
   - Compare the Cover Letter to the Job Description:
     - Is the cover letter aligned with the job requirements?
     - What improvements can be made?

3. **Summary**:
   - Estimate the percentage chance that this Resume and Cover Letter can pass the ATS system for this job.
   - List any important keywords that can be added to the Resume and Cover Letter.
   - Suggest keywords that should be replaced with better alternatives.
`

const basicPrompt = `Attached are the Resume, Cover Letter, and Job Description for which the candidate is applying for the job.

Please provide:
1. A brief introduction to the job and candidate.
2. An estimated percentage chance of the resume and cover letter passing an ATS system.
`
