/*
Package badge contains non-divisible non-fungible NEP11-compatible token
implementation serving as the achievement badge registry of the Quinty
bounty system. Badges are soulbound: once minted to an account they can
never change hands, and the transfer method rejects every call. Minting is
restricted to the registry administrator and the minters it authorizes; at
system setup the bounty contract is authorized and issues BountyCreator and
BountySolver badges as side effects of the bounty lifecycle.

# Contract notifications

Transfer notification (mint only, from is always null):

	Transfer
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

BadgeMinted notification:

	BadgeMinted
	  - name: recipient
	    type: Hash160
	  - name: kind
	    type: Integer
	  - name: badgeId
	    type: Integer
*/
package badge

/*
Contract storage model.

# Summary
Key-value storage format:
 - 0x00 -> int
   total number of badges ever minted; badge IDs are sequential from 1
 - 0x01 + owner -> int
   number of badges owned by the account
 - 0x02 + owner + tokenID -> []byte
   token ID, keyed by owner for the TokensOf iterator
 - 0x03 + tokenID -> std.Serialize(Badge)
   badge record
 - 0x10 + account -> bool
   set of accounts authorized to mint
 - 0x11 -> interop.Hash160
   registry administrator
 - 0x12 -> string
   metadata base URI
*/
