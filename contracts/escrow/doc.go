/*
Package escrow implements the custody ledger of the Quinty bounty system.

The contract holds native GAS on behalf of the marketplace participants.
Anyone tops up a free balance by transferring GAS to the contract and takes
it back with Withdraw. The bounty contract is the only principal allowed to
move value between accounts and purposes: Accept locks part of a free
balance under a purpose (bounty reward or submission deposit), Release pays
a locked purpose out to an account. The ledger itself carries no business
logic, so the total supply always equals the sum of free balances and
locked purposes.

# Contract notifications

Deposit notification:

	Deposit
	  - name: from
	    type: Hash160
	  - name: receiver
	    type: Hash160
	  - name: amount
	    type: Integer

Withdraw notification:

	Withdraw
	  - name: user
	    type: Hash160
	  - name: amount
	    type: Integer

Lock notification:

	Lock
	  - name: purpose
	    type: Hash256
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Release notification:

	Release
	  - name: purpose
	    type: Hash256
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package escrow

/*
Contract storage model.

# Summary
Key-value storage format:
 - 's' -> int
   total amount of GAS custodied by the contract
 - 'o' -> interop.Hash160
   contract owner (deploying principal)
 - 'b' -> interop.Hash160
   bounty contract allowed to call Accept and Release
 - 'a' + account -> std.Serialize(Account)
   free balance of the account
 - 'l' + purpose -> int
   amount locked under 32-byte purpose identifier
*/
