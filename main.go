package main

import (
	"fmt"
	"os"
)

func main() {
	// expect 1 argument: demo name, optional 2nd: output directory
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run . <demo_name> [output_dir]")
		fmt.Println("Demos: binomial, normal, priors")
		return
	}
	demo := os.Args[1]
	outDir := "output"
	if len(os.Args) > 2 {
		outDir = os.Args[2]
	}
	fmt.Println("Running grid approximation demo:", demo)

	var err error
	switch demo {
	case "binomial":
		err = RunBinomialDemo(outDir)
	case "normal":
		err = RunNormalDemo(outDir)
	case "priors":
		err = RunPriorComparisonDemo(outDir)
	default:
		panic("Unsupported demo: " + demo + ". Options: binomial, normal, priors")
	}
	if err != nil {
		panic(err)
	}
}
