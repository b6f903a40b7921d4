package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"reelq/internal/api"
)

// renderQueueTable draws the queue with the current reel's row highlighted.
func renderQueueTable(snap api.Snapshot) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "URL"})
	for _, entry := range snap.Entries {
		url := entry.URL
		if entry.Position == 1 {
			url = text.Colors{text.Bold, text.FgGreen}.Sprint(url)
		}
		tw.AppendRow(table.Row{strconv.Itoa(entry.Position), url})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignRight},
		{Number: 2, Align: text.AlignLeft, WidthMax: 100},
	})
	tw.SetCaption("%d in queue", len(snap.Entries))
	return tw.Render()
}
