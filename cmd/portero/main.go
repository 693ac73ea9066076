// portero CLI: operaciones de whitelist y login de prueba contra el API.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		baseURL = envOr("PORTERO_URL", "http://localhost:8080")
		out     = envOr("PORTERO_OUT", "text")
		timeout = 30 * time.Second
	)

	root := &cobra.Command{
		Use:   "portero",
		Short: "CLI para el admission gate (whitelist y login de prueba)",
	}

	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base del API (env PORTERO_URL)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{BaseURL: baseURL, OutFormat: out, HTTP: &http.Client{Timeout: timeout}}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL = baseURL
		cl.OutFormat = out
	}

	// grupo whitelist
	whitelistCmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Mantenimiento de la whitelist",
	}

	var wlAccount, wlProvider string

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Agregar un par (accountName, provider). Idempotente.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if wlAccount == "" || wlProvider == "" {
				return fmt.Errorf("faltan --account y/o --provider")
			}
			body, _ := json.Marshal(map[string]string{
				"accountName": wlAccount,
				"provider":    wlProvider,
			})
			status, resp, err := cl.do("POST", "/account/whitelist", body)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("whitelist add falló: status=%d body=%s", status, string(resp))
			}
			cl.print(status, resp)
			return nil
		},
	}
	addCmd.Flags().StringVar(&wlAccount, "account", "", "account name (ej: alice@example.com)")
	addCmd.Flags().StringVar(&wlProvider, "provider", "", "identity provider (ej: google)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Consultar si un par está whitelisteado",
		RunE: func(cmd *cobra.Command, args []string) error {
			if wlAccount == "" || wlProvider == "" {
				return fmt.Errorf("faltan --account y/o --provider")
			}
			q := url.Values{}
			q.Set("accountName", wlAccount)
			q.Set("provider", wlProvider)
			status, resp, err := cl.do("GET", "/account/whitelist?"+q.Encode(), nil)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			return nil
		},
	}
	checkCmd.Flags().StringVar(&wlAccount, "account", "", "account name")
	checkCmd.Flags().StringVar(&wlProvider, "provider", "", "identity provider")

	whitelistCmd.AddCommand(addCmd, checkCmd)

	// login de prueba
	var token string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Probar un login con un bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return fmt.Errorf("falta --token")
			}
			body, _ := json.Marshal(map[string]string{"token": token})
			status, resp, err := cl.do("POST", "/account/login", body)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&token, "token", "", "bearer token a verificar")

	root.AddCommand(whitelistCmd, loginCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
