package fano_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/shannonfano/pkg/alphabet"
	"github.com/matzehuels/shannonfano/pkg/fano"
)

func ExampleBuild() {
	symbols := []alphabet.Symbol{
		{Name: "A", Probability: 0.5},
		{Name: "B", Probability: 0.25},
		{Name: "C", Probability: 0.25},
	}

	res, err := fano.Build(context.Background(), symbols, fano.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, c := range res.Codes {
		fmt.Printf("%s=%s\n", c.Name, c.Code)
	}
	// Output:
	// A=1
	// B=00
	// C=01
}

func ExampleEncode() {
	codes := []fano.Coded{
		{Name: "B", Probability: 1.0 / 3, Code: "0"},
		{Name: "A", Probability: 2.0 / 3, Code: "1"},
	}
	fmt.Println(fano.Encode("AAB", codes))
	// Output:
	// 110
}
