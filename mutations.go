package kit

import (
	"github.com/voximplant/kit-functions-sdk-sub000/core/reply"
)

// Reply message mutations. These all delegate to the state machine and
// translate its validation errors into the boolean contract, with the
// offending field logged.

// SetReplyMessageText sets the reply text. Valid for message and call kinds.
func (k *Kit) SetReplyMessageText(text string) bool {
	if err := k.message.SetText(text); err != nil {
		k.logValidation("set_reply_text_rejected", err)
		return false
	}
	return true
}

// FinishRequest ensures exactly one finish_request command is pending.
// Calling it repeatedly never duplicates the command.
func (k *Kit) FinishRequest() bool {
	if err := k.message.FinishRequest(); err != nil {
		k.logValidation("finish_request_rejected", err)
		return false
	}
	return true
}

// CancelFinishRequest removes a pending finish_request command. Always
// succeeds, whether or not one was pending.
func (k *Kit) CancelFinishRequest() bool {
	k.message.CancelFinishRequest()
	return true
}

// TransferToQueue activates a queue transfer, cancelling any active user
// transfer. Repeated calls replace the queue target.
func (k *Kit) TransferToQueue(target reply.QueueTarget) bool {
	if err := k.message.TransferToQueue(target); err != nil {
		k.logValidation("transfer_to_queue_rejected", err)
		return false
	}
	return true
}

// CancelTransferToQueue removes a pending queue transfer. Always succeeds.
func (k *Kit) CancelTransferToQueue() bool {
	k.message.CancelTransferToQueue()
	return true
}

// TransferToUser activates a user transfer, cancelling any active queue
// transfer. Repeated calls replace the user target.
func (k *Kit) TransferToUser(target reply.UserTarget) bool {
	if err := k.message.TransferToUser(target); err != nil {
		k.logValidation("transfer_to_user_rejected", err)
		return false
	}
	return true
}

// CancelTransferToUser removes a pending user transfer. Always succeeds.
func (k *Kit) CancelTransferToUser() bool {
	k.message.CancelTransferToUser()
	return true
}

// SetCustomData upserts a named custom-data entry appended to the payload
// at serialization time.
func (k *Kit) SetCustomData(name string, data any) bool {
	if err := k.message.SetCustomData(name, data); err != nil {
		k.logValidation("set_custom_data_rejected", err)
		return false
	}
	return true
}

// SetReplyWebChatInlineButtons replaces the web-chat inline button block,
// or removes it when buttons is empty.
func (k *Kit) SetReplyWebChatInlineButtons(buttons []reply.InlineButton) bool {
	if err := k.message.SetWebChatInlineButtons(buttons); err != nil {
		k.logValidation("set_inline_buttons_rejected", err)
		return false
	}
	return true
}

// addPhoto appends a photo item to the payload. Unlike commands, photos are
// not upserted; duplicates are allowed.
func (k *Kit) addPhoto(url string) bool {
	if err := k.message.AddPhoto(url); err != nil {
		k.logValidation("add_photo_rejected", err)
		return false
	}
	return true
}
