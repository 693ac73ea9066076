package account

// WhitelistRequest es el body de POST /account/whitelist.
type WhitelistRequest struct {
	AccountName string `json:"accountName"`
	Provider    string `json:"provider"`
}

// WhitelistStatusResponse es la respuesta de GET /account/whitelist.
type WhitelistStatusResponse struct {
	AccountName string `json:"accountName"`
	Provider    string `json:"provider"`
	Whitelisted bool   `json:"whitelisted"`
}
