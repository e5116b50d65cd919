package sink_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/barsvg/pkg/barcode"
	"github.com/matzehuels/barsvg/pkg/sink"
)

func ExampleRenderSVG() {
	d := barcode.NewBoundary(nil).Render(context.Background(), barcode.Props{
		Value:  "12345678",
		Format: "ITF",
		Height: 40,
	})
	svg := sink.RenderSVG(d)
	fmt.Println(len(svg) > 0, d.OK())
	// Output:
	// true true
}
