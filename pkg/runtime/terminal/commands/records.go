package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/premiummedi/labreport/pkg/runtime/terminal/export"
	"github.com/premiummedi/labreport/pkg/store/patientdb"
)

func NewRecordsCmd(store *patientdb.Store, reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Inspect and maintain the patient index",
	}

	cmd.AddCommand(newRecordsSearchCmd(store, reporter))
	cmd.AddCommand(newRecordsDeleteCmd(store))

	return cmd
}

type recordsSearchCmd struct {
	query    string
	store    *patientdb.Store
	reporter *export.Reporter
}

func newRecordsSearchCmd(store *patientdb.Store, reporter *export.Reporter) *cobra.Command {
	sc := &recordsSearchCmd{store: store, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search patient records by first or last name",
		RunE:  sc.run,
	}

	cmd.Flags().StringVarP(&sc.query, "query", "q", "", "Name fragment to search for (empty lists everything)")

	return cmd
}

func (sc *recordsSearchCmd) run(cmd *cobra.Command, args []string) error {
	records, err := sc.store.Search(sc.query)
	if err != nil {
		return fmt.Errorf("failed to search patient records: %w", err)
	}
	return sc.reporter.Handle(records)
}

type recordsDeleteCmd struct {
	id    int
	store *patientdb.Store
}

func newRecordsDeleteCmd(store *patientdb.Store) *cobra.Command {
	dc := &recordsDeleteCmd{store: store}
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a patient record and its document file",
		RunE:  dc.run,
	}

	cmd.Flags().IntVar(&dc.id, "id", 0, "Record id to delete")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func (dc *recordsDeleteCmd) run(cmd *cobra.Command, args []string) error {
	deleted, err := dc.store.Delete(dc.id)
	if err != nil {
		return fmt.Errorf("failed to delete record %d: %w", dc.id, err)
	}
	if !deleted {
		return fmt.Errorf("no record with id %d", dc.id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "record %d deleted\n", dc.id)
	return nil
}
