package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/services"
)

// ReportHandler exposes the PDF export on the command line.
type ReportHandler struct {
	service *services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{
		service: service,
	}
}

// RegisterCommands adds the report command to root and returns it.
func (h *ReportHandler) RegisterCommands(root *cobra.Command) *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report <id>",
		Short: "Export the PDF report of a patient",
		Args:  cobra.ExactArgs(1),
		RunE:  h.HandleReport,
	}
	root.AddCommand(reportCmd)
	return reportCmd
}

// HandleReport writes the report and prints its path.
func (h *ReportHandler) HandleReport(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	path, err := h.service.GenerateReport(id)
	if err != nil {
		return describe(id, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
