package main

import (
	"context"

	"github.com/bjulian5/flattengit/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
