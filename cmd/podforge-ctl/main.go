package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	apiKey    string
	output    string
)

var rootCmd = &cobra.Command{
	Use:   "podforge-ctl",
	Short: "podforge server management tool",
	Long: `podforge-ctl is a management tool for podforge servers.

Commands:
  health    Check server health
  voices    List a TTS backend's voices
  generate  Generate a podcast script`,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	RunE:  runHealth,
}

var voicesCmd = &cobra.Command{
	Use:   "voices [backend]",
	Short: "List voices for a TTS backend (elevenlabs, openai, tts)",
	Args:  cobra.ExactArgs(1),
	RunE:  runVoices,
}

var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate a podcast script",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "podforge server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for authentication")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")

	generateCmd.Flags().StringSlice("url", nil, "Source URL (repeatable)")
	generateCmd.Flags().StringSlice("file", nil, "Source file (.pdf/.txt/.md, repeatable, max 2)")
	generateCmd.Flags().String("minutes", "", "Target episode length in minutes")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(voicesCmd)
	rootCmd.AddCommand(generateCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	resp, err := makeRequest(http.MethodGet, serverURL+"/v1/health", "", nil)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var health map[string]interface{}
	_ = json.Unmarshal(resp, &health)
	fmt.Printf("Status: %s\n", health["status"])
	return nil
}

func runVoices(cmd *cobra.Command, args []string) error {
	resp, err := makeRequest(http.MethodGet, serverURL+"/api/"+args[0]+"/voices", "", nil)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var payload struct {
		Voices []struct {
			VoiceID     string `json:"voiceId"`
			Name        string `json:"name"`
			Lang        string `json:"lang"`
			Description string `json:"description"`
		} `json:"voices"`
	}
	if err := json.Unmarshal(resp, &payload); err != nil {
		return err
	}

	for _, v := range payload.Voices {
		fmt.Printf("%-16s %-24s %-8s %s\n", v.VoiceID, v.Name, v.Lang, v.Description)
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	urls, _ := cmd.Flags().GetStringSlice("url")
	files, _ := cmd.Flags().GetStringSlice("file")
	minutes, _ := cmd.Flags().GetString("minutes")

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	if err := form.WriteField("prompt", args[0]); err != nil {
		return err
	}
	if minutes != "" {
		if err := form.WriteField("targetMinutes", minutes); err != nil {
			return err
		}
	}
	for _, u := range urls {
		if err := form.WriteField("urls", u); err != nil {
			return err
		}
	}
	for _, path := range files {
		part, err := form.CreateFormFile("files", filepath.Base(path))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(part, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	if err := form.Close(); err != nil {
		return err
	}

	resp, err := makeRequest(http.MethodPost, serverURL+"/api/genai/generate", form.FormDataContentType(), &body)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Println(string(resp))
		return nil
	}

	var result struct {
		Data           string   `json:"data"`
		FilesProcessed int      `json:"filesProcessed"`
		URLsProcessed  int      `json:"urlsProcessed"`
		Errors         []string `json:"errors"`
		Message        string   `json:"message"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return err
	}

	fmt.Println(result.Data)
	fmt.Fprintf(os.Stderr, "\n%s (files: %d, urls: %d)\n", result.Message, result.FilesProcessed, result.URLsProcessed)
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, "warning:", e)
	}
	return nil
}

func makeRequest(method, url, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
