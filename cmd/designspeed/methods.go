package main

import (
	"io"
	"strconv"

	"github.com/couchcryptid/storm-data-extremes-service/internal/domain"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

// MethodsCommand lists the estimation methods and their requirements.
var MethodsCommand = cli.Command{
	Action: func(ctx *cli.Context) error {
		printMethods(ctx.App.Writer)
		return nil
	},
	Name:  "methods",
	Usage: "list estimation methods",
}

func printMethods(w io.Writer) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Method", "Family", "Supported", "Measured data", "Needs years"})
	tbl.SetBorder(true)
	for _, m := range domain.Methods() {
		tbl.Append([]string{
			string(m.Method),
			string(m.Family),
			strconv.FormatBool(m.Supported),
			strconv.FormatBool(m.MeasuredData),
			strconv.FormatBool(m.NeedsYears),
		})
	}
	tbl.Render()
}
