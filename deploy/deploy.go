// Package deploy provides Quinty contract deployment procedure.
package deploy

import (
	"context"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for Quinty deployment.
type Blockchain interface {
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of a smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the Quinty deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy Quinty to.
	Blockchain Blockchain

	// Account used to sign deployment transactions (must be unlocked). It
	// becomes the owner of the Escrow, Bounty and Reputation contracts and
	// the administrator of the Badge contract.
	DeployerAccount *wallet.Account

	// Prefix of badge metadata URIs, e.g. 'ipfs://'.
	BadgeBaseURI string

	EscrowContract     CommonDeployPrm
	BountyContract     CommonDeployPrm
	ReputationContract CommonDeployPrm
	BadgeContract      CommonDeployPrm
}

// Deploy initializes the Quinty contract suite on the Neo network
// represented by given Prm.Blockchain and links the contracts together.
//
// Contracts are deployed in order: Escrow, Reputation, Badge, Bounty. After
// all four are on the chain, Deploy runs the linking sequence: the Escrow
// contract is pointed at the Bounty contract, the Bounty contract receives
// the addresses of the other three, ownership of the Reputation contract is
// transferred to the Bounty contract and the Bounty contract is authorized
// to mint badges.
//
// Deploy is idempotent: contracts already present on the chain are not
// re-deployed, linking steps already done are skipped.
func Deploy(ctx context.Context, prm Prm) error {
	act, err := actor.NewSimple(prm.Blockchain, prm.DeployerAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from deployer account: %w", err)
	}

	deployer := prm.DeployerAccount.ScriptHash()

	syncPrm := syncContractPrm{
		logger:     prm.Logger,
		blockchain: prm.Blockchain,
		actor:      act,
		deployer:   deployer,
	}

	syncPrm.name = "Escrow"
	syncPrm.common = prm.EscrowContract
	syncPrm.deployArgs = []any{deployer}

	escrowAddress, err := syncContract(ctx, syncPrm)
	if err != nil {
		return err
	}

	syncPrm.name = "Reputation"
	syncPrm.common = prm.ReputationContract
	syncPrm.deployArgs = []any{deployer}

	reputationAddress, err := syncContract(ctx, syncPrm)
	if err != nil {
		return err
	}

	syncPrm.name = "Badge"
	syncPrm.common = prm.BadgeContract
	syncPrm.deployArgs = []any{deployer, prm.BadgeBaseURI}

	badgeAddress, err := syncContract(ctx, syncPrm)
	if err != nil {
		return err
	}

	syncPrm.name = "Bounty"
	syncPrm.common = prm.BountyContract
	syncPrm.deployArgs = []any{deployer}

	bountyAddress, err := syncContract(ctx, syncPrm)
	if err != nil {
		return err
	}

	// Link contracts together. The binding steps are final and report an
	// 'already set' fault when repeated. The ownership handoff is different:
	// after it the deployer's witness no longer satisfies the reputation
	// contract, so a repeated run detects it by reading the current owner.
	prm.Logger.Info("linking the contracts...")

	linkSteps := []struct {
		contract util.Uint160
		method   string
		args     []any
		done     func() (bool, error)
	}{
		{contract: escrowAddress, method: "setBountyContract", args: []any{bountyAddress}},
		{contract: bountyAddress, method: "setAddresses", args: []any{escrowAddress, reputationAddress, badgeAddress}},
		{contract: reputationAddress, method: "transferOwnership", args: []any{bountyAddress}, done: func() (bool, error) {
			return reputationOwnedBy(act, reputationAddress, bountyAddress)
		}},
		{contract: badgeAddress, method: "authorizeMinter", args: []any{bountyAddress}},
	}

	for _, step := range linkSteps {
		if step.done != nil {
			done, err := step.done()
			if err != nil {
				return fmt.Errorf("link step '%s': %w", step.method, err)
			}
			if done {
				prm.Logger.Info("contracts are already linked, skipping", zap.String("method", step.method))
				continue
			}
		}

		err = linkContracts(ctx, prm.Logger, act, step.contract, step.method, step.args)
		if err != nil {
			return fmt.Errorf("link step '%s': %w", step.method, err)
		}
	}

	prm.Logger.Info("Quinty contracts successfully deployed and linked",
		zap.Stringer("escrow", escrowAddress),
		zap.Stringer("bounty", bountyAddress),
		zap.Stringer("reputation", reputationAddress),
		zap.Stringer("badge", badgeAddress))

	return nil
}

type syncContractPrm struct {
	logger     *zap.Logger
	blockchain Blockchain
	actor      *actor.Actor
	deployer   util.Uint160

	name       string
	common     CommonDeployPrm
	deployArgs []any
}

// syncContract deploys the contract unless it is already on the chain. The
// resulting address is a function of the deployer account, so a repeated
// run finds the previously deployed contract at the same address.
func syncContract(ctx context.Context, prm syncContractPrm) (util.Uint160, error) {
	expected := state.CreateContractHash(prm.deployer, prm.common.NEF.Checksum, prm.common.Manifest.Name)

	onChainState, err := prm.blockchain.GetContractStateByHash(expected)
	if err == nil {
		prm.logger.Info("contract is already on the chain",
			zap.String("name", prm.name), zap.Stringer("address", onChainState.Hash))
		return onChainState.Hash, nil
	} else if !isErrContractNotFound(err) {
		return util.Uint160{}, fmt.Errorf("read '%s' contract state: %w", prm.name, err)
	}

	prm.logger.Info("contract is missing on the chain, deploying...", zap.String("name", prm.name))

	mgmt := management.New(prm.actor)

	txHash, vub, err := mgmt.Deploy(&prm.common.NEF, &prm.common.Manifest, prm.deployArgs)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy '%s' contract: %w", prm.name, err)
	}

	_, err = waitHalt(ctx, prm.actor, txHash, vub)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("deploy '%s' contract: %w", prm.name, err)
	}

	prm.logger.Info("contract successfully deployed",
		zap.String("name", prm.name), zap.Stringer("address", expected))

	return expected, nil
}

// invokeCaller is the subset of actor.Actor used for read-only state checks.
type invokeCaller interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
}

// reputationOwnedBy reports whether ownership of the reputation contract
// already belongs to the given account.
func reputationOwnedBy(c invokeCaller, reputationContract, owner util.Uint160) (bool, error) {
	current, err := unwrap.Uint160(c.Call(reputationContract, "owner"))
	if err != nil {
		return false, fmt.Errorf("read reputation contract owner: %w", err)
	}
	return current.Equals(owner), nil
}

func linkContracts(ctx context.Context, l *zap.Logger, act *actor.Actor, contract util.Uint160, method string, args []any) error {
	// test invocation first, a fault with 'already set' means the step has
	// been done in a previous run
	res, err := act.Call(contract, method, args...)
	if err != nil {
		return fmt.Errorf("test invoke '%s': %w", method, err)
	}

	if res.State != vmstate.Halt.String() {
		if strings.Contains(res.FaultException, "already set") {
			l.Info("contracts are already linked, skipping", zap.String("method", method))
			return nil
		}
		return fmt.Errorf("test invoke '%s' failed: %s", method, res.FaultException)
	}

	txHash, vub, err := act.SendCall(contract, method, args...)
	if err != nil {
		return fmt.Errorf("send invocation of '%s': %w", method, err)
	}

	_, err = waitHalt(ctx, act, txHash, vub)
	if err != nil {
		return fmt.Errorf("invocation of '%s': %w", method, err)
	}

	l.Info("link step successfully done", zap.String("method", method))

	return nil
}

func waitHalt(ctx context.Context, act *actor.Actor, txHash util.Uint256, vub uint32) (*state.AppExecResult, error) {
	aer, err := act.Wait(txHash, vub, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if aer.VMState != vmstate.Halt {
		return nil, fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), aer.FaultException)
	}

	return aer, nil
}

func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}
