package lark

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
)

// UploadMedia pushes image bytes into Drive storage attached to the Bitable
// app and returns the opaque file token. One network call, no internal
// retry; the ingestion pipeline composes retries around it.
func (c *Client) UploadMedia(ctx context.Context, token, filename string, data []byte) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}

	fields := map[string]string{
		"file_name":   filename,
		"parent_type": "bitable_image",
		"parent_node": c.appToken,
		"size":        strconv.Itoa(len(data)),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return "", fmt.Errorf("upload %s: %w", filename, err)
		}
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}

	u := c.base + "/open-apis/drive/v1/medias/upload_all"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, &buf)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	var body struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Data struct {
			FileToken string `json:"file_token"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("upload %s: decode response: %w", filename, err)
	}
	if body.Code != 0 {
		return "", fmt.Errorf("upload %s: %w", filename, &APIError{Code: body.Code, Msg: body.Msg})
	}
	if body.Data.FileToken == "" {
		return "", fmt.Errorf("upload %s: empty file token in response", filename)
	}
	return body.Data.FileToken, nil
}
