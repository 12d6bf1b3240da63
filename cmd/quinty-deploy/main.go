package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path"

	"github.com/nspcc-dev/neo-go/pkg/crypto/keys"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/quinty-io/quinty-contract/deploy"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer NEP-6 wallet")
	walletPassword := flag.String("password", "", "Password of the deployer wallet account")
	contractsDir := flag.String("contracts", "contracts", "Directory with the contract sources")
	badgeBaseURI := flag.String("base-uri", "ipfs://", "Prefix of badge metadata URIs")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	}

	err := _deploy(*neoRPCEndpoint, *walletPath, *walletPassword, *contractsDir, *badgeBaseURI)
	if err != nil {
		log.Fatal(err)
	}
}

func _deploy(neoRPCEndpoint, walletPath, walletPassword, contractsDir, badgeBaseURI string) error {
	ctx := context.Background()

	l, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return fmt.Errorf("open deployer wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return fmt.Errorf("deployer wallet '%s' has no suitable account", walletPath)
	}

	err = acc.Decrypt(walletPassword, keys.NEP2ScryptParams())
	if err != nil {
		return fmt.Errorf("unlock deployer account: %w", err)
	}

	c, err := rpcclient.New(ctx, neoRPCEndpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("create Neo RPC client: %w", err)
	}

	defer c.Close()

	err = c.Init()
	if err != nil {
		return fmt.Errorf("initialize Neo RPC client: %w", err)
	}

	prm := deploy.Prm{
		Logger:          l,
		Blockchain:      c,
		DeployerAccount: acc,
		BadgeBaseURI:    badgeBaseURI,
	}

	for _, ctr := range []struct {
		dir string
		dst *deploy.CommonDeployPrm
	}{
		{"escrow", &prm.EscrowContract},
		{"bounty", &prm.BountyContract},
		{"reputation", &prm.ReputationContract},
		{"badge", &prm.BadgeContract},
	} {
		*ctr.dst, err = deploy.CompileContract(path.Join(contractsDir, ctr.dir))
		if err != nil {
			return err
		}
	}

	return deploy.Deploy(ctx, prm)
}
