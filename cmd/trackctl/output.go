package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/agritrace/supplytrace/internal/model"
	"github.com/agritrace/supplytrace/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printProduct(p *model.Product) {
	fmt.Printf("ID:           %s\n", p.ID)
	fmt.Printf("Name:         %s\n", p.Name)
	fmt.Printf("Type:         %s\n", p.Type)
	fmt.Printf("Batch:        %s\n", p.BatchID)
	fmt.Printf("Harvest Date: %s\n", p.HarvestDate)
	fmt.Printf("Origin Farm:  %s (%s)\n", p.OriginFarmName, p.OriginFarmID)
	if p.Destination != "" {
		fmt.Printf("Destination:  %s\n", p.Destination)
	}
	if p.Status != "" {
		fmt.Printf("Status:       %s\n", ui.RenderStatus(p.Status))
	}
	if p.CurrentLocation != "" {
		fmt.Printf("Location:     %s\n", p.CurrentLocation)
	}
	fmt.Printf("Created At:   %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated At:   %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
}

func printProductTable(products []*model.Product, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tBATCH\tSTATUS\tLOCATION")
	for _, p := range products {
		name := p.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID,
			name,
			p.Type,
			p.BatchID,
			ui.RenderStatus(p.Status),
			p.CurrentLocation,
		)
	}
	w.Flush()
	fmt.Printf("\n%d products (%d total)\n", len(products), total)
}

func printHistory(history []model.TrackingStage) {
	if len(history) == 0 {
		fmt.Println("no tracking history")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tLOCATION\tHANDLER\tTIMESTAMP\tNOTES")
	for _, s := range history {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ui.RenderStatus(s.Stage),
			s.Location,
			s.Handler,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Notes,
		)
	}
	w.Flush()
}

func printFarmTable(farms []*model.Farm) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCATION\tOWNER")
	for _, f := range farms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.ID, f.Name, f.Location, f.Owner)
	}
	w.Flush()
}
