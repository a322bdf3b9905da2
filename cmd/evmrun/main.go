// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

// Command evmrun is a single-binary harness for running EVM bytecode
// directly, the way `evm run` does in go-ethereum. It never touches
// consensus, networking, or the mempool — it only builds a ChainConfig for
// the named hardfork, seeds an in-memory IntraBlockState with one funded
// account, and runs the given code through internal/vm/runtime.Execute.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"

	"github.com/n42blockchain/N42/common/types"
	"github.com/n42blockchain/N42/internal/vm/runtime"
	"github.com/n42blockchain/N42/modules/state"
	"github.com/n42blockchain/N42/params"
)

var (
	codeFlag = &cli.StringFlag{
		Name:     "code",
		Usage:    "contract bytecode to run, as hex (0x-prefixed or not)",
		Required: true,
	}
	inputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "calldata to pass to the code, as hex",
		Value: "",
	}
	gasFlag = &cli.Uint64Flag{
		Name:  "gas",
		Usage: "gas limit for the run",
		Value: 10_000_000,
	}
	hardforkFlag = &cli.StringFlag{
		Name:  "hardfork",
		Usage: "hardfork to execute under (Frontier .. Cancun)",
		Value: params.Cancun.String(),
	}
	shadowFlag = &cli.StringFlag{
		Name:  "shadow",
		Usage: "re-run the call through the reference interpreter and report divergence: off, per_call, per_block",
		Value: "off",
	}
	shadowFailFastFlag = &cli.BoolFlag{
		Name:  "shadow-fail-fast",
		Usage: "panic on the first shadow mismatch instead of logging and continuing",
	}
)

// runnerOrigin is the fixed sender address evmrun funds before every run.
var runnerOrigin = types.HexToAddress("0x00000000000000000000000000000000000a11")

// runnerBalance is large enough that no plausible --gas value
// exhausts it; evmrun never executes a real transaction priced against it.
var runnerBalance = new(uint256.Int).Mul(uint256.NewInt(1_000_000), uint256.NewInt(1_000_000_000_000_000_000))

// runResult is the JSON shape printed to stdout.
type runResult struct {
	Success          bool   `json:"success"`
	ReturnData       string `json:"return_data"`
	GasUsed          uint64 `json:"gas_used"`
	Error            string `json:"error,omitempty"`
	ShadowMismatches int    `json:"shadow_mismatches,omitempty"`
}

func main() {
	app := &cli.App{
		Name:  "evmrun",
		Usage: "run EVM bytecode against an in-memory state, print (success, return_data, gas_used)",
		Flags: []cli.Flag{codeFlag, inputFlag, gasFlag, hardforkFlag, shadowFlag, shadowFailFastFlag},
		Action: func(c *cli.Context) error {
			return run(c)
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "evmrun: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	code, err := decodeHex(c.String("code"))
	if err != nil {
		return fmt.Errorf("--code: %w", err)
	}
	input, err := decodeHex(c.String("input"))
	if err != nil {
		return fmt.Errorf("--input: %w", err)
	}
	hf, err := parseHardfork(c.String("hardfork"))
	if err != nil {
		return err
	}
	shadowMode, err := parseShadowMode(c.String("shadow"))
	if err != nil {
		return err
	}

	db := state.New(nil)
	db.CreateAccount(runnerOrigin, false)
	db.AddBalance(runnerOrigin, runnerBalance)

	cfg := &runtime.Config{
		ChainConfig: chainConfigFor(hf),
		Origin:      runnerOrigin,
		GasLimit:    c.Uint64("gas"),
		Value:       uint256.NewInt(0),
		State:       db,
	}
	var shadow *runtime.ShadowComparator
	if shadowMode != runtime.ShadowOff {
		shadow = &runtime.ShadowComparator{Mode: shadowMode, FailFast: c.Bool("shadow-fail-fast")}
		cfg.Shadow = shadow
	}

	ret, _, leftOverGas, runErr := runtime.Execute(code, input, cfg)

	result := runResult{
		Success:    runErr == nil,
		ReturnData: "0x" + hex.EncodeToString(ret),
		GasUsed:    cfg.GasLimit - leftOverGas,
	}
	if runErr != nil {
		result.Error = runErr.Error()
	}
	if shadow != nil {
		result.ShadowMismatches = len(shadow.Mismatches)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseShadowMode(name string) (runtime.ShadowMode, error) {
	switch strings.ToLower(name) {
	case "", "off":
		return runtime.ShadowOff, nil
	case "per_call":
		return runtime.ShadowPerCall, nil
	case "per_block":
		return runtime.ShadowPerBlock, nil
	default:
		return runtime.ShadowOff, fmt.Errorf("--shadow: unknown mode %q (want off, per_call, or per_block)", name)
	}
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

func parseHardfork(name string) (params.Hardfork, error) {
	forks := []params.Hardfork{
		params.Frontier, params.Homestead, params.DAO, params.TangerineWhistle,
		params.SpuriousDragon, params.Byzantium, params.Constantinople,
		params.Petersburg, params.Istanbul, params.MuirGlacier, params.Berlin,
		params.London, params.ArrowGlacier, params.GrayGlacier, params.Merge,
		params.Shanghai, params.Cancun,
	}
	for _, hf := range forks {
		if strings.EqualFold(hf.String(), name) {
			return hf, nil
		}
	}
	return 0, fmt.Errorf("--hardfork: unknown hardfork %q", name)
}

// chainConfigFor clones AllCancunChainConfig (every fork activated at block
// 0) and un-activates every fork after hf, so Rules() at block 0 reports
// exactly the named hardfork rather than always Cancun.
func chainConfigFor(hf params.Hardfork) *params.ChainConfig {
	cfg := *params.AllCancunChainConfig

	never := (*big.Int)(nil)
	type gated struct {
		fork  params.Hardfork
		field **big.Int
	}
	gates := []gated{
		{params.Homestead, &cfg.HomesteadBlock},
		{params.TangerineWhistle, &cfg.TangerineWhistleBlock},
		{params.SpuriousDragon, &cfg.SpuriousDragonBlock},
		{params.Byzantium, &cfg.ByzantiumBlock},
		{params.Constantinople, &cfg.ConstantinopleBlock},
		{params.Petersburg, &cfg.PetersburgBlock},
		{params.Istanbul, &cfg.IstanbulBlock},
		{params.Berlin, &cfg.BerlinBlock},
		{params.London, &cfg.LondonBlock},
		{params.Merge, &cfg.MergeNetsplitBlock},
		{params.Shanghai, &cfg.ShanghaiBlock},
		{params.Cancun, &cfg.CancunBlock},
	}
	for _, g := range gates {
		if g.fork > hf {
			*g.field = never
		}
	}
	return &cfg
}
