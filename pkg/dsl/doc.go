/*
Package dsl provides a fluent builder for constructing menu trees in Go code
instead of YAML files. It is the natural way to define a phone system whose
options carry actions, since actions are functions and cannot live in a
config file.

Example usage:

	root, err := dsl.NewMenu("prompts/main").
		Hybrid().
		Option("1", dsl.NewMenu("prompts/info").
			Option("1", dsl.Leaf("prompts/weather")).
			Option("2", dsl.Leaf("prompts/time"))).
		Option("101", dsl.Leaf("prompts/weather")).
		Option("102", dsl.Leaf("prompts/jokes").Do(tellJoke)).
		Build()

Validation runs at Build time, node by node, so a bad key layout is reported
with the prompt of the menu that owns it.
*/
package dsl
