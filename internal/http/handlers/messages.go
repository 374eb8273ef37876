package handlers

// User-facing form errors. They stay generic so a failed login does not
// reveal whether the username exists.
const (
	msgInvalidLogin   = "اسم المستخدم أو كلمة المرور غير صحيحة"
	msgRegisterFailed = "حدث خطأ أثناء التسجيل"
	msgCreateArticle  = "حدث خطأ أثناء إنشاء المقال"
	msgUpdateArticle  = "حدث خطأ أثناء تحديث المقال"
	msgDeleteArticle  = "حدث خطأ أثناء حذف المقال"
	msgCreateCategory = "حدث خطأ أثناء إنشاء التصنيف"
)
