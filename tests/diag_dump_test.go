package tests

import (
	"fmt"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/opcode"
)

func TestDiagDump(t *testing.T) {
	bc, acc := chain.NewSingle(t)
	e := neotest.NewExecutor(t, bc, acc, acc)
	c := neotest.CompileFile(t, e.CommitteeHash, reputationPath, path.Join(reputationPath, "config.yml"))
	for _, m := range c.Manifest.ABI.Methods {
		fmt.Printf("method %s offset=%d ret=%s params=%d\n", m.Name, m.Offset, m.ReturnType, len(m.Parameters))
	}
	script := c.NEF.Script
	fmt.Println("script len", len(script))
	for i := 0; i < len(script); {
		op := opcode.Opcode(script[i])
		sz := 1
		switch op {
		case opcode.PUSHINT8, opcode.JMP, opcode.JMPIF, opcode.JMPIFNOT, opcode.JMPEQ, opcode.JMPNE,
			opcode.JMPGT, opcode.JMPGE, opcode.JMPLT, opcode.JMPLE, opcode.CALL, opcode.ENDTRY,
			opcode.INITSSLOT, opcode.LDSFLD, opcode.STSFLD, opcode.LDLOC, opcode.STLOC, opcode.LDARG, opcode.STARG,
			opcode.NEWARRAYT, opcode.ISTYPE, opcode.CONVERT:
			sz = 2
		case opcode.PUSHINT16, opcode.CALLT, opcode.TRY, opcode.INITSLOT:
			sz = 3
		case opcode.PUSHINT32, opcode.PUSHA, opcode.JMPL, opcode.JMPIFL, opcode.JMPIFNOTL, opcode.JMPEQL,
			opcode.JMPNEL, opcode.JMPGTL, opcode.JMPGEL, opcode.JMPLTL, opcode.JMPLEL, opcode.CALLL,
			opcode.ENDTRYL, opcode.SYSCALL:
			sz = 5
		case opcode.PUSHINT64, opcode.TRYL:
			sz = 9
		case opcode.PUSHINT128:
			sz = 17
		case opcode.PUSHINT256:
			sz = 33
		case opcode.PUSHDATA1:
			if i+1 < len(script) {
				sz = 2 + int(script[i+1])
			}
		case opcode.PUSHDATA2:
			if i+2 < len(script) {
				sz = 3 + int(script[i+1]) | int(script[i+2])<<8
			}
		}
		fmt.Printf("%4d: %s %x\n", i, op, script[i+1:i+sz])
		i += sz
	}
}
