package mermaid_test

import (
	"fmt"

	"github.com/axiome/firstprinciples/pkg/render/mermaid"
)

func ExampleConvert() {
	fmt.Println(mermaid.Convert("A: B, C\nB: A", false))
	// Output:
	// graph TD
	//     A --- B
	//     A --- C
	//     A[[A]]
	//     B[[B]]
}

func ExampleConvert_directed() {
	fmt.Println(mermaid.Convert("A: B", true))
	// Output:
	// graph TD
	//     A --> B
	//     A[[A]]
}
