/*
Package reputation implements the reputation ledger of the Quinty bounty
system.

The ledger keeps monotonically non-decreasing participation counters per
account: bounties created, submissions made, bounties won and the total
value earned. Counters are mutated only with the authority of the ledger
owner. At system setup ownership is transferred from the deploying
principal to the bounty contract, which then drives the counters as side
effects of bounty lifecycle events. Reads are open to anyone.

# Contract notifications

Reputation contract does not produce notifications to process.
*/
package reputation

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'o' -> interop.Hash160
   contract owner, the only principal allowed to mutate counters
 - 'u' + account -> std.Serialize(UserStats)
   participation counters of the account
*/
