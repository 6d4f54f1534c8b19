// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/anomaly-console/pkg/types"
)

// UploadField is the multipart field the backend reads the spreadsheet from.
const UploadField = "file"

// UploadExcel streams r to the backend as multipart/form-data under the
// field "file". The payload is never inspected: size and type checks are
// the backend's job. The call is bounded by UploadTimeout rather than
// Timeout. A response with success=false is returned as an *APIError.
func (c *Client) UploadExcel(ctx context.Context, filename string, r io.Reader) (*types.UploadResult, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return nil, invalid("upload needs a file name")
	}
	if r == nil {
		return nil, invalid("upload needs a reader")
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile(UploadField, filename)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	cl := call{
		op:          "uploadExcel",
		method:      http.MethodPost,
		path:        pathUpload,
		body:        pr,
		contentType: mw.FormDataContentType(),
		timeout:     c.uploadTimeout,
	}
	resp, err := c.do(ctx, cl)
	// Unblocks the writer goroutine if the request ended before draining the pipe.
	pr.Close()
	if err != nil {
		return nil, err
	}

	result, err := decode[types.UploadResult](resp.Body)
	if err != nil {
		return nil, c.contractFailure(cl, err)
	}
	if !result.Success {
		apiErr := &APIError{
			Op:         cl.op,
			Method:     cl.method,
			URL:        c.endpoint(cl),
			StatusCode: resp.StatusCode,
			Message:    result.Message,
			Body:       resp.Body,
		}
		c.logFailure(cl, apiErr.URL, resp.StatusCode, apiErr)
		return nil, apiErr
	}
	if err := types.ValidateArticles(result.Articles); err != nil {
		return nil, c.contractFailure(cl, err)
	}
	return &result, nil
}

// UploadExcelFile opens path and uploads it with UploadExcel.
func (c *Client) UploadExcelFile(ctx context.Context, path string) (*types.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return c.UploadExcel(ctx, filepath.Base(path), f)
}
