// fpcheck checks flight plans against ordered rule files.
//
// Each rule pairs a condition over flight plan fields with the action to
// show when it holds; the first matching rule wins.
//
// Usage:
//
//	# Check flight plan files against a rule directory
//	fpcheck check --rules rules/eddf plans/*.yaml
//
//	# Show which rules were evaluated
//	fpcheck check --rules rules/eddf --explain plan.json
//
//	# Validate rule files, including static checks of every condition
//	fpcheck lint rules/eddf
//
//	# Run rule test suites
//	fpcheck test suites/
//
//	# Serve checks over HTTP with hot reload
//	fpcheck serve --config fpcheck.yaml
package main

func main() {
	Execute()
}
