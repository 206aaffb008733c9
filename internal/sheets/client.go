package sheets

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// APIError is a failed Sheets call, carrying the message and code the API returned.
type APIError struct {
	Op      string
	Message string
	Code    int
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: the API returned an error: %s (%d)", e.Op, e.Message, e.Code)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func wrapAPIError(op string, err error) error {
	apiErr := &APIError{Op: op, Message: err.Error(), Err: err}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		apiErr.Code = gerr.Code
		if gerr.Message != "" {
			apiErr.Message = gerr.Message
		}
	}
	return apiErr
}

type Client struct {
	service *sheets.Service
}

// NewClient builds a Sheets client. Pass option.WithHTTPClient with an
// OAuth-authenticated client for user credentials.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

func (c *Client) ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, wrapAPIError("failed to read sheet", err)
	}

	log.Debug().
		Str("range", resp.Range).
		Int("rows", len(resp.Values)).
		Msg("Read sheet range")
	return resp.Values, nil
}

// AppendRows inserts rows after the table found in range_ and returns the A1
// range the API reports it wrote.
func (c *Client) AppendRows(ctx context.Context, spreadsheetID, range_ string, rows [][]interface{}) (string, error) {
	valueRange := &sheets.ValueRange{
		Range:          range_,
		MajorDimension: "ROWS",
		Values:         rows,
	}

	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, range_, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return "", wrapAPIError("failed to append rows", err)
	}
	if resp.Updates == nil || resp.Updates.UpdatedRange == "" {
		return "", fmt.Errorf("failed to append rows: response did not include the updated range")
	}

	log.Debug().
		Str("updated_range", resp.Updates.UpdatedRange).
		Int64("updated_rows", resp.Updates.UpdatedRows).
		Msg("Appended rows")
	return resp.Updates.UpdatedRange, nil
}
