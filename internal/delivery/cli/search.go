package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"doctor-directory/internal/delivery/dto"
	"doctor-directory/internal/domain/entity"
	"doctor-directory/internal/urlstate"
	"doctor-directory/internal/usecase"

	"github.com/spf13/cobra"
)

// SearchOptions are the flags of the search command. Empty fields are not
// applied, so values deep-linked through URL survive.
type SearchOptions struct {
	Search      string
	Mode        string
	Specialties []string
	Sort        string
	URL         string
}

// NewSearchCommand builds the one-shot search command. newDirectory is called
// once the flags are parsed.
func NewSearchCommand(newDirectory func() (usecase.DoctorDirectoryUsecase, error)) *cobra.Command {
	opts := SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Fetch the directory once and print the filtered doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			directory, err := newDirectory()
			if err != nil {
				return err
			}
			return RunSearch(cmd.Context(), cmd.OutOrStdout(), directory, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Search, "search", "", "Name or specialty search term")
	cmd.Flags().StringVar(&opts.Mode, "mode", "", `Consultation mode ("Video Consult" or "In Clinic")`)
	cmd.Flags().StringArrayVar(&opts.Specialties, "specialty", nil, "Specialty to select (repeatable)")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "Sort key (fees or experience)")
	cmd.Flags().StringVar(&opts.URL, "url", "", "Listing URL whose query seeds the filters")

	return cmd
}

// RunSearch loads the directory, hydrates the filters from opts.URL, applies
// the remaining options as view actions and writes the result table to out.
func RunSearch(ctx context.Context, out io.Writer, directory usecase.DoctorDirectoryUsecase, opts SearchOptions) error {
	query := url.Values{}
	if opts.URL != "" {
		u, err := url.Parse(opts.URL)
		if err != nil {
			return fmt.Errorf("invalid --url: %w", err)
		}
		query = u.Query()
	}

	if err := directory.Load(ctx); err != nil {
		return err
	}

	state := urlstate.Decode(query)
	listing, err := directory.ListDoctors(ctx, state)
	if err != nil {
		return err
	}

	for _, req := range actionsFor(opts) {
		if req.Type == usecase.ActionToggleSpecialty && state.HasSpecialty(req.Value) {
			continue
		}
		result, err := directory.ApplyAction(ctx, query, &req)
		if err != nil {
			return err
		}
		query, state, listing = result.Query, result.State, result.Listing
	}

	return writeListing(out, listing)
}

func actionsFor(opts SearchOptions) []dto.ViewActionRequest {
	var actions []dto.ViewActionRequest
	if opts.Search != "" {
		actions = append(actions, dto.ViewActionRequest{Type: usecase.ActionSearch, Value: opts.Search})
	}
	if opts.Mode != "" {
		actions = append(actions, dto.ViewActionRequest{Type: usecase.ActionMode, Value: opts.Mode})
	}
	for _, s := range opts.Specialties {
		actions = append(actions, dto.ViewActionRequest{Type: usecase.ActionToggleSpecialty, Value: strings.TrimSpace(s)})
	}
	if opts.Sort != "" {
		actions = append(actions, dto.ViewActionRequest{Type: usecase.ActionSort, Value: opts.Sort})
	}
	return actions
}

func writeListing(out io.Writer, listing *dto.DoctorListResponse) error {
	if listing.Message != "" {
		fmt.Fprintln(out, listing.Message)
	} else {
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSPECIALTIES\tEXPERIENCE\tFEE\tMODES")
		for _, d := range listing.Doctors {
			fmt.Fprintf(tw, "%s\t%s\t%d yrs\t%s\t%s\n",
				d.Name, strings.Join(d.Specialties, ", "), d.ExperienceYears, d.Fee.String(), modes(d))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(out, "\n%d doctors\nquery: ?%s\n", listing.Total, listing.Query)
	return err
}

func modes(d dto.DoctorResponse) string {
	var m []string
	if d.VideoConsult {
		m = append(m, string(entity.ModeVideoConsult))
	}
	if d.InClinic {
		m = append(m, string(entity.ModeInClinic))
	}
	if len(m) == 0 {
		return "-"
	}
	return strings.Join(m, ", ")
}
