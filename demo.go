package main

import (
	"fmt"

	"github.com/zeebo/clingy"
	"github.com/zeebo/errs/v2"

	"loov.dev/calltimeline/import/tracer"
)

// cmdDemo records the call log of a small banking workload.
type cmdDemo struct {
	out string
}

func (cmd *cmdDemo) Setup(params clingy.Parameters) {
	cmd.out = params.Arg("out", "log file to write").(string)
}

func (cmd *cmdDemo) Execute(ctx clingy.Context) (err error) {
	tr, err := tracer.Create(cmd.out)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := tr.Close(); err == nil {
			err = closeErr
		}
	}()

	if err := runBankDemo(tr); err != nil {
		return err
	}
	fmt.Fprintf(ctx, "wrote %s\n", cmd.out)
	return nil
}

var errInsufficientFunds = errs.Tag("insufficient funds")

type account struct {
	tr      *tracer.Tracer
	balance int64
}

func (acc *account) deposit(amount int64) {
	defer acc.tr.Trace("Account::deposit")()
	acc.balance += amount
}

func (acc *account) withdraw(amount int64) error {
	defer acc.tr.Trace("Account::withdraw")()
	if amount > acc.balance {
		return errInsufficientFunds.Errorf("balance %d, requested %d", acc.balance, amount)
	}
	acc.balance -= amount
	return nil
}

type bank struct {
	tr       *tracer.Tracer
	accounts map[string]*account
}

func (b *bank) createAccount(number string, balance int64) {
	defer b.tr.Trace("Bank::create_account")()
	b.accounts[number] = &account{tr: b.tr, balance: balance}
}

func (b *bank) process(kind, number string, amount int64) error {
	defer b.tr.Trace("Bank::process_transaction")()
	acc, ok := b.accounts[number]
	if !ok {
		return errs.Errorf("account %q not found", number)
	}

	defer b.tr.Trace("Transaction::process")()
	switch kind {
	case "deposit":
		acc.deposit(amount)
		return nil
	case "withdrawal":
		return acc.withdraw(amount)
	}
	return errs.Errorf("unknown transaction %q", kind)
}

func runBankDemo(tr *tracer.Tracer) error {
	defer tr.Trace("bank_demo")()

	b := &bank{tr: tr, accounts: map[string]*account{}}
	b.createAccount("12345", 1000)
	b.createAccount("67890", 500)

	if err := b.process("withdrawal", "12345", 200); err != nil {
		return err
	}
	return b.process("deposit", "67890", 200)
}
