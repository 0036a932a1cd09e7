package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/quorumwallet/vaultd/app"
	"github.com/quorumwallet/vaultd/crypto"
	"github.com/quorumwallet/vaultd/tx"
)

func postJSON(url string, body any, out any) error {
	dat, err := json.Marshal(body)
	if err != nil {
		return err
	}
	res, err := http.Post(url, "application/json", bytes.NewReader(dat))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("service responded %v: %s", res.StatusCode, raw)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

func getJSON(url string, out any) error {
	res, err := http.Get(url)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("service responded %v: %s", res.StatusCode, raw)
	}
	return json.Unmarshal(raw, out)
}

func walletSummary(url string) (*app.WalletSummary, error) {
	var sum app.WalletSummary
	if err := getJSON(url+"/wallet", &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

func queryNonce(url string, address string) (uint64, error) {
	var res struct {
		Nonce uint64 `json:"nonce"`
	}
	err := postJSON(url+"/getNonce", map[string]string{"address": address}, &res)
	return res.Nonce, err
}

// signAndSend completes the envelope with the wallet id and nonce, signs it
// with the key at skeyPath and posts it to the service.
func signAndSend(url string, skeyPath string, nonce uint64, tp tx.WalletTxType, payload any) error {
	key, err := crypto.LoadKeyFile(skeyPath)
	if err != nil {
		return err
	}
	sum, err := walletSummary(url)
	if err != nil {
		return fmt.Errorf("get wallet summary: %w", err)
	}
	if nonce == 0 {
		if nonce, err = queryNonce(url, key.Address().Hex()); err != nil {
			return fmt.Errorf("get nonce: %w", err)
		}
	}
	btx := &tx.WalletTx{
		Version: tx.WalletTxVersion1,
		Type:    tp,
		Nonce:   nonce,
		From:    key.Address(),
		Tx:      payload,
	}
	if err := btx.Sign(key.PrivateKey(), []byte(sum.WalletID)); err != nil {
		return fmt.Errorf("sign tx: %w", err)
	}
	dat, err := tx.MarshalWalletTx(btx)
	if err != nil {
		return err
	}
	res, err := http.Post(url+"/tx", "application/json", bytes.NewReader(dat))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("tx rejected: %s", raw)
	}
	fmt.Printf("%s\n", raw)
	return nil
}
