package checks

import (
	"fmt"
	"strings"

	"dev/bravebird/ui-check-go/pkg/models"
)

// GenerateRodScript renders a suite as a standalone go-rod program, useful for
// replaying a suite outside the service while debugging a flaky page. The
// generated program exits nonzero on the first failed assertion.
func GenerateRodScript(suite models.CheckSuite) string {
	var sb strings.Builder

	sb.WriteString(`package main

import (
	"log"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

func bodyHasClass(page *rod.Page, class string) bool {
	className := page.MustEval("() => document.body.className").Str()
	for _, c := range strings.Fields(className) {
		if c == class {
			return true
		}
	}
	return false
}

func main() {
	u := launcher.New().Headless(true).MustLaunch()
	browser := rod.New().ControlURL(u).MustConnect()
	defer browser.MustClose()

	page := browser.MustPage()

`)

	for i, check := range suite.Checks {
		if check.Description != "" {
			sb.WriteString(fmt.Sprintf("\t// Step %d: %s\n", i+1, check.Description))
		} else {
			sb.WriteString(fmt.Sprintf("\t// Step %d: %s\n", i+1, check.Type))
		}

		switch check.Type {
		case models.CheckNavigate:
			sb.WriteString(fmt.Sprintf("\tpage.MustNavigate(\"%s\").MustWaitLoad()\n", escapeString(suite.TargetURL)))

		case models.CheckToggleClass:
			sb.WriteString(fmt.Sprintf("\tpage.MustElement(\"%s\").MustClick()\n", escapeSelector(check.Selector)))
			if check.ExpectPresent {
				sb.WriteString(fmt.Sprintf("\tif !bodyHasClass(page, \"%s\") {\n", escapeString(check.Class)))
				sb.WriteString(fmt.Sprintf("\t\tlog.Fatalf(\"expected body class to contain %s\")\n", escapeString(check.Class)))
			} else {
				sb.WriteString(fmt.Sprintf("\tif bodyHasClass(page, \"%s\") {\n", escapeString(check.Class)))
				sb.WriteString(fmt.Sprintf("\t\tlog.Fatalf(\"expected body class to exclude %s\")\n", escapeString(check.Class)))
			}
			sb.WriteString("\t}\n")

		case models.CheckReloadPersist:
			sb.WriteString(fmt.Sprintf("\tbefore := bodyHasClass(page, \"%s\")\n", escapeString(check.Class)))
			sb.WriteString("\tpage.MustReload().MustWaitLoad()\n")
			sb.WriteString(fmt.Sprintf("\tif bodyHasClass(page, \"%s\") != before {\n", escapeString(check.Class)))
			sb.WriteString(fmt.Sprintf("\t\tlog.Fatalf(\"class %s did not persist across reload\")\n", escapeString(check.Class)))
			sb.WriteString("\t}\n")

		case models.CheckViewportWidth:
			sb.WriteString(fmt.Sprintf("\tpage.MustSetViewport(%d, %d, 1, false)\n", check.Viewport.Width, check.Viewport.Height))
			sb.WriteString(fmt.Sprintf("\twidth := page.MustEval(`(sel) => {\n\t\tconst el = document.querySelector(sel);\n\t\treturn el ? el.getBoundingClientRect().width : -1;\n\t}`, \"%s\").Num()\n", escapeSelector(check.Selector)))
			sb.WriteString("\tif width <= 0 {\n")
			sb.WriteString(fmt.Sprintf("\t\tlog.Fatalf(\"%s not visible, width %%v\", width)\n", escapeSelector(check.Selector)))
			sb.WriteString("\t}\n")
		}

		sb.WriteString("\n")
	}

	sb.WriteString(`	log.Println("all checks passed")
}
`)

	return sb.String()
}

func escapeSelector(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	return s
}
