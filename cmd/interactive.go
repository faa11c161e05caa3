/*
Copyright © 2025 speaktech

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/speaktech/transqiita/internal/markdown"
	"github.com/speaktech/transqiita/internal/planner"
)

const articlesPerPage = 10

const pickerBanner = `
-----------------------------------------------
 _                        ____  _ _ _
| |                      / __ \(_|_) |
| |_ _ __ __ _ _ __  ___| |  | |_ _| |_ __ _
| __| '__/ _' | '_ \/ __| |  | | | | __/ _' |
| |_| | | (_| | | | \__ \ |__| | | | || (_| |
 \__|_|  \__,_|_| |_|___/\___\_\_|_|\__\__,_|

-----------------------------------------------
`

// pickCandidates runs the interactive selection loop: candidates are shown
// ten per page with n/b paging; entering an index selects one article,
// 'a' selects all, and a y/n confirmation follows either choice. An empty
// slice is returned when the user declines or input ends.
func pickCandidates(in io.Reader, out io.Writer, candidates []planner.Candidate) ([]planner.Candidate, error) {
	scanner := bufio.NewScanner(in)
	pageStart := 0

	for {
		fmt.Fprint(out, pickerBanner)
		fmt.Fprintln(out, "\nNew and updated articles eligible for translation are listed below.")
		fmt.Fprintln(out, "Enter the number of the article to translate, or [a] for all.")
		fmt.Fprintln(out, "([n]: next page, [b]: previous page)")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "[no]\t(status)\ttitle")

		end := pageStart + articlesPerPage
		if end > len(candidates) {
			end = len(candidates)
		}
		for i := pageStart; i < end; i++ {
			c := candidates[i]
			fmt.Fprintf(out, "[%03d]\t(%s)\t%s\n", i, c.Status, c.Article.Title)
			if excerpt := markdown.Excerpt(c.Article.Body, 60); excerpt != "" {
				fmt.Fprintf(out, "\t\t\t%s\n", excerpt)
			}
		}

		fmt.Fprint(out, "\n[number/a/n/b]: ")
		input, ok := readLine(scanner)
		if !ok {
			return nil, nil
		}

		switch {
		case input == "n":
			if pageStart+articlesPerPage < len(candidates) {
				pageStart += articlesPerPage
			}
			continue
		case input == "b":
			if pageStart-articlesPerPage >= 0 {
				pageStart -= articlesPerPage
			}
			continue
		case input == "a":
			fmt.Fprintf(out, "\nTranslate and upload all %d articles? [y/n]: ", len(candidates))
			if confirm(scanner) {
				return candidates, nil
			}
			return nil, nil
		default:
			idx, err := strconv.Atoi(input)
			if err != nil || idx < 0 || idx >= len(candidates) {
				fmt.Fprintln(out, "\nInvalid selection; try again.")
				continue
			}
			c := candidates[idx]
			fmt.Fprintf(out, "\nTranslate and upload the following article? [y/n]\n")
			fmt.Fprintf(out, "[%03d]\t(%s)\t%s\n", idx, c.Status, c.Article.Title)
			fmt.Fprint(out, "[y/n]: ")
			if confirm(scanner) {
				return []planner.Candidate{c}, nil
			}
			return nil, nil
		}
	}
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func confirm(scanner *bufio.Scanner) bool {
	answer, ok := readLine(scanner)
	return ok && answer == "y"
}
