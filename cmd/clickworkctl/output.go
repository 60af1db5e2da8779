package main

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/clickwork/clickwork/pkg/api"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func renderClaims(w io.Writer, claims []api.Claim) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "Task", "Project", "User", "Started"})

	for _, c := range claims {
		tw.AppendRow(table.Row{c.ID, c.TaskID, c.ProjectTitle, c.Username, c.StartTime.Format("2006-01-02 15:04")})
	}

	tw.AppendFooter(table.Row{"", "", "", "Total", len(claims)})
	tw.Render()
}

func renderOverview(w io.Writer, overview *api.ProjectOverview) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(overview.Title)
	tw.AppendHeader(table.Row{"Annotations", "Tasks"})

	for _, b := range overview.Buckets {
		tw.AppendRow(table.Row{strconv.Itoa(b.CompletedAssignments), b.Count})
	}

	tw.AppendSeparator()
	tw.AppendRow(table.Row{"needs merging", overview.NeedsMerging})
	tw.AppendRow(table.Row{"finished", overview.Finished})
	tw.Render()
}
