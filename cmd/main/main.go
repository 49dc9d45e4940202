package main

import (
	"github.com/ryand2626/recruitment-pipeline/cmd"
)

func main() {
	cmd.Execute()
}
